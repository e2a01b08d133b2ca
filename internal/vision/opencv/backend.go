package opencv

import "camviewer/internal/vision"

// Backend opens OpenCV devices and windows.
type Backend struct{}

func (Backend) LoadCascade(path string) (vision.Classifier, error) {
	c, err := LoadCascade(path)
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (Backend) OpenCamera(index int) (vision.Camera, error) {
	c, err := OpenCamera(index)
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (Backend) NewSurface(name string) (vision.Surface, error) {
	return NewWindow(name), nil
}

func (Backend) Imaging() vision.Imaging {
	return Imaging{}
}
