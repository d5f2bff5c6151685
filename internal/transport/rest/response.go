package rest

// ScoreField is the relevance score key attached to every result record.
const ScoreField = "@search.score"

// Document is one result record: field name to value, schema owned by the
// remote index. The relevance score is present under ScoreField.
type Document map[string]any

// Score returns the relevance score, or 0 if absent.
func (d Document) Score() float64 {
	if s, ok := d[ScoreField].(float64); ok {
		return s
	}
	return 0
}

// SearchResponse is the decoded body of a successful search call.
type SearchResponse struct {
	Count              *int64         `json:"@odata.count,omitempty"`
	Value              []Document     `json:"value"`
	NextPageParameters *SearchRequest `json:"@search.nextPageParameters,omitempty"`
	NextLink           string         `json:"@odata.nextLink,omitempty"`
}
