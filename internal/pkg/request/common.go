package request

// ByIDRequest is a common struct for endpoints addressing an entity by its
// numeric id path parameter.
type ByIDRequest struct {
	ID int64 `uri:"id" binding:"required,min=1"`
}
