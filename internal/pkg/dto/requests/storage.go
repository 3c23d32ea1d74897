package requests

// ImageUpload is an image read from a multipart form, held in memory until
// it is handed to the media storage.
type ImageUpload struct {
	FileName    string
	ContentType string
	Size        int64
	Data        []byte
}
