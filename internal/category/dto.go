// AngelaMos | 2026
// dto.go

package category

type CategoryRequest struct {
	Name string `json:"name" label:"Name" validate:"required,max=100"`
}
