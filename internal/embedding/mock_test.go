package embedding

import (
	"context"
)

type MockClient struct {
	Vector []float32
	Errs   []error // popped per call; nil entries mean success
	Calls  int
}

func (m *MockClient) Embed(ctx context.Context, img Image) ([]float32, error) {
	m.Calls++
	if len(m.Errs) > 0 {
		err := m.Errs[0]
		m.Errs = m.Errs[1:]
		if err != nil {
			return nil, err
		}
	}
	return m.Vector, nil
}

type MockFetcher struct {
	Image Image
	Err   error
	URL   string
}

func (m *MockFetcher) Fetch(ctx context.Context, url string) (Image, error) {
	m.URL = url
	if m.Err != nil {
		return Image{}, m.Err
	}
	return m.Image, nil
}
