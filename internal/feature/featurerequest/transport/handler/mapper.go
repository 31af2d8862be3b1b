package handler

import (
	"featureboard_backend/internal/api"
	"featureboard_backend/internal/feature/featurerequest/domain/entity"
)

func toResponse(fr *entity.FeatureRequest) api.FeatureRequest {
	return api.FeatureRequest{
		Id:          fr.ID,
		Title:       fr.Title,
		Description: fr.Description,
		UserName:    fr.UserName,
		UserEmail:   fr.UserEmail,
		Priority:    api.Priority(fr.Priority),
		Status:      api.Status(fr.Status),
		Votes:       fr.Votes,
		IsHidden:    fr.IsHidden,
		CreatedAt:   fr.CreatedAt,
		UpdatedAt:   fr.UpdatedAt,
	}
}

// toResponseList は空の場合も null ではなく [] を返します。
func toResponseList(items []entity.FeatureRequest) []api.FeatureRequest {
	out := make([]api.FeatureRequest, 0, len(items))
	for i := range items {
		out = append(out, toResponse(&items[i]))
	}
	return out
}
