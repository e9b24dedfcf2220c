package dto

type DocumentMeta struct {
	Filename string `json:"filename"`
	Password string `json:"password,omitempty"`
}

type UploadMetadata struct {
	Documents []DocumentMeta `json:"documents"`
}

// PasswordFor returns the password supplied for filename, if any.
func (m UploadMetadata) PasswordFor(filename string) string {
	for _, d := range m.Documents {
		if d.Filename == filename {
			return d.Password
		}
	}
	return ""
}

// Document is one statement queued for parsing.
type Document struct {
	Meta DocumentMeta
	Data []byte
}

type FailureKind string

const (
	FailureExtraction FailureKind = "extraction"
	FailureStructural FailureKind = "structural"
	FailureSource     FailureKind = "source"
)

type DocumentFailure struct {
	Filename string      `json:"filename"`
	Kind     FailureKind `json:"kind"`
	Error    string      `json:"error"`
}

// BatchResult keeps successful records and failures in input order.
type BatchResult struct {
	Records  []PaystubRecord   `json:"records"`
	Failures []DocumentFailure `json:"failures"`
}
