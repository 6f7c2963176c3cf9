package project

type CreateProjectRequest struct {
	Name     string `json:"name" binding:"required"`
	ClientID string `json:"client_id" binding:"required,uuid"`
	Location string `json:"location"`
}

type UpdateProjectRequest struct {
	Name     string `json:"name" binding:"required"`
	ClientID string `json:"client_id" binding:"required,uuid"`
	Location string `json:"location"`
}

type ProjectResponse struct {
	ID         string `json:"id"`
	CompanyID  string `json:"company_id"`
	ClientID   string `json:"client_id"`
	ClientName string `json:"client_name,omitempty"`
	Name       string `json:"name"`
	Location   string `json:"location,omitempty"`
	CreatedAt  string `json:"created_at,omitempty"`
	UpdatedAt  string `json:"updated_at,omitempty"`
}
