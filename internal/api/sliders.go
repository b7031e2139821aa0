package api

import (
	"context"
	"net/http"
)

// AddSliderRequest registers already-hosted media as a slider
type AddSliderRequest struct {
	MediaURL  string `json:"mediaUrl"`
	MediaType string `json:"mediaType"`
}

// ListSliders returns all sliders
func (c *Client) ListSliders(ctx context.Context) ([]Slider, error) {
	var sliders []Slider
	if _, err := c.doJSON(ctx, http.MethodGet, pathSliders, nil, &sliders); err != nil {
		return nil, err
	}
	return sliders, nil
}

// AddSlider creates a slider and returns the server's message
func (c *Client) AddSlider(ctx context.Context, req AddSliderRequest) (string, error) {
	return c.doJSON(ctx, http.MethodPost, pathAddSlider, req, nil)
}

// DeleteSlider removes a slider by ID
func (c *Client) DeleteSlider(ctx context.Context, sliderID string) error {
	_, err := c.doJSON(ctx, http.MethodDelete, pathDeleteSlider(sliderID), nil, nil)
	return err
}
