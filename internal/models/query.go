package models

// SearchRequest is the payload for POST /search.
type SearchRequest struct {
	Message string `json:"message"`
}

// BrowseRequest is the query-parameter payload for GET /browse.
type BrowseRequest struct {
	Type  string `json:"type"  query:"type"`
	Limit int64  `json:"limit" query:"limit"` // optional; default handled in handler
	Skip  int64  `json:"skip"  query:"skip"`
}
