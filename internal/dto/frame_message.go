package dto

// FrameMessage is one display frame pushed to live viewers.
type FrameMessage struct {
	Camera string `json:"camera"`
	Image  string `json:"image"` // base64 JPEG
}
