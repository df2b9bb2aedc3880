package stablediffusion

// ImagePayload is the image returned to callers.
type ImagePayload struct {
	ImageBase64    string  `json:"image_base64"`
	Format         string  `json:"format"`
	Width          int     `json:"width"`
	Height         int     `json:"height"`
	Prompt         string  `json:"prompt"`
	NegativePrompt string  `json:"negative_prompt"`
	Steps          int     `json:"steps"`
	GuidanceScale  float64 `json:"guidance_scale"`
	Seed           *int64  `json:"seed"`
	Model          string  `json:"model"`
	ImageIndex     int     `json:"image_index,omitempty"`
}

// Txt2ImgRequest is the body of POST /sdapi/v1/txt2img.
type Txt2ImgRequest struct {
	Prompt         string  `json:"prompt"`
	NegativePrompt string  `json:"negative_prompt,omitempty"`
	Steps          int     `json:"steps"`
	CfgScale       float64 `json:"cfg_scale"`
	Width          int     `json:"width"`
	Height         int     `json:"height"`
	Seed           int64   `json:"seed"`
	BatchSize      int     `json:"batch_size"`
	SamplerName    string  `json:"sampler_name,omitempty"`
}

// Txt2ImgResponse holds the decoded images and the seed actually used.
type Txt2ImgResponse struct {
	Images []string
	Seed   int64
}
