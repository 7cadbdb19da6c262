package dto

import "hr-system/internal/entities"

type CreateReferenceDTO struct {
	Code   string `json:"code" validate:"required,min=1,max=32"`
	NameEN string `json:"name_en" validate:"required,min=1,max=255"`
	NameAR string `json:"name_ar" validate:"required,min=1,max=255"`
}

type UpdateReferenceDTO struct {
	Code   *string `json:"code" validate:"omitempty,min=1,max=32"`
	NameEN *string `json:"name_en" validate:"omitempty,min=1,max=255"`
	NameAR *string `json:"name_ar" validate:"omitempty,min=1,max=255"`
}

type ReferenceDTO struct {
	ID        string `json:"id"`
	Code      string `json:"code"`
	NameEN    string `json:"name_en"`
	NameAR    string `json:"name_ar"`
	CreatedAt string `json:"created_at"`
}

func ToReferenceDTO(r entities.Reference) ReferenceDTO {
	return ReferenceDTO{
		ID:        r.ID.String(),
		Code:      r.Code,
		NameEN:    r.NameEN,
		NameAR:    r.NameAR,
		CreatedAt: r.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}
