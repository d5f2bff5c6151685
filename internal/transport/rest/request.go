package rest

// SearchRequest is the JSON body of a documents search call.
// Field names follow the service wire format; zero values are omitted so a
// vector-only request carries no keyword parameters.
type SearchRequest struct {
	Search                string        `json:"search,omitempty"`
	VectorQueries         []VectorQuery `json:"vectorQueries,omitempty"`
	Top                   int           `json:"top,omitempty"`
	Skip                  int           `json:"skip,omitempty"`
	Select                string        `json:"select,omitempty"`
	Count                 bool          `json:"count,omitempty"`
	QueryType             string        `json:"queryType,omitempty"`
	SemanticConfiguration string        `json:"semanticConfiguration,omitempty"`
	QueryRewrites         string        `json:"queryRewrites,omitempty"`
	QueryLanguage         string        `json:"queryLanguage,omitempty"`
}

// VectorQuery describes one vector leg of a search request.
// Kind "text" asks the service to vectorize Text; kind "vector" sends a
// caller-supplied embedding.
type VectorQuery struct {
	Kind   string    `json:"kind"`
	Text   string    `json:"text,omitempty"`
	Vector []float32 `json:"vector,omitempty"`
	K      int       `json:"k,omitempty"`
	Fields string    `json:"fields,omitempty"`
}

// Query type and rewrite selector values.
const (
	QueryTypeSemantic       = "semantic"
	QueryRewritesGenerative = "generative"

	VectorKindText = "text"
	VectorKindRaw  = "vector"
)

// Mode returns the metrics label for the request shape.
func (r *SearchRequest) Mode() string {
	hasText := r.Search != ""
	hasVector := len(r.VectorQueries) > 0

	switch {
	case r.QueryRewrites != "":
		return "rewrite"
	case r.QueryType == QueryTypeSemantic:
		return "semantic"
	case hasText && hasVector:
		return "hybrid"
	case hasVector:
		return "vector"
	default:
		return "keyword"
	}
}
