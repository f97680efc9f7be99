package model

// File is one entry of the stored-file listing. Name is the storage key
// exactly as the object store reports it.
type File struct {
	Name string `json:"name"`
}

// Message is the body of a successful upload or delete.
type Message struct {
	Message string `json:"message"`
}

// PromptResponse is the body of a successful prompt submission.
type PromptResponse struct {
	Response string `json:"response"`
}
