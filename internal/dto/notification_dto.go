package dto

type NotificationFilter struct {
	Status string `form:"status" validate:"omitempty,oneof=pending sent failed all"`
	Page   int    `form:"page,default=1"   validate:"min=1"`
	Limit  int    `form:"limit,default=50" validate:"min=1,max=200"`
}

type NotificationResponse struct {
	ID                string  `json:"id"`
	Type              string  `json:"type"`
	Title             string  `json:"title"`
	Message           string  `json:"message"`
	DeliveryMethod    string  `json:"delivery_method"`
	Status            string  `json:"status"`
	SentAt            *string `json:"sent_at"`
	RelatedObjectType *string `json:"related_object_type"`
	RelatedObjectID   *string `json:"related_object_id"`
	CreatedAt         string  `json:"created_at"`
}

type NotificationListResponse struct {
	Data  []NotificationResponse `json:"data"`
	Total int64                  `json:"total"`
	Page  int                    `json:"page"`
	Limit int                    `json:"limit"`
}
