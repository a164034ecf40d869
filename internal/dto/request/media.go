package request

type MediaPatchRequest struct {
	IsMain    *bool `json:"is_main,omitempty"`
	IsDeleted *bool `json:"is_deleted,omitempty"`
}
