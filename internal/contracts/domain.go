package contracts

type MessageResponse struct {
	Message string `json:"message"`
}
