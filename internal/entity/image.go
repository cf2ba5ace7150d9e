package entity

type ImageFormat string

const (
	JPEG ImageFormat = "jpeg"
	PNG  ImageFormat = "png"
	GIF  ImageFormat = "gif"
	WEBP ImageFormat = "webp"
	BMP  ImageFormat = "bmp"
)

func (f ImageFormat) MIMEType() string {
	return "image/" + string(f)
}

// Uploads are limited to the formats the page accepts.
func (f ImageFormat) IsUploadable() bool {
	return f == JPEG || f == PNG
}

type SourceImage struct {
	Data   []byte
	Format ImageFormat
}

type EditRequest struct {
	Image       SourceImage
	Pose        Pose
	Instruction string
	Model       string
}

type EditedImage struct {
	Data     []byte      `json:"-"`
	MIMEType string      `json:"mime_type"`
	Format   ImageFormat `json:"format"`
	Width    int         `json:"width"`
	Height   int         `json:"height"`
	Note     string      `json:"note,omitempty"`
}
