package model

// Match is a suspected duplicate: the existing entry plus the cosine
// similarity between its embedding and the newly submitted photo's embedding.
type Match struct {
	Entry      Entry   `json:"entry"`
	Similarity float64 `json:"similarity"`
}
