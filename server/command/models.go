package command

type GreetRequest struct {
	Name string `json:"name"`
}

type ErrorResponse struct {
	Error Error `json:"error"`
}

type Error struct {
	Message string `json:"message"`
}
