package todos

import "philcali.me/lists/internal/data"

type CreateTodoRequest struct {
	Name    *string `json:"name,omitempty"`
	DueDate *string `json:"dueDate,omitempty"`
}

func (r *CreateTodoRequest) ToData() data.TodoInputDTO {
	return data.TodoInputDTO{
		Name:    r.Name,
		DueDate: r.DueDate,
	}
}

type UpdateTodoRequest struct {
	Name    string `json:"name"`
	DueDate string `json:"dueDate"`
	Done    bool   `json:"done"`
}

func (r *UpdateTodoRequest) ToData() data.TodoUpdateDTO {
	return data.TodoUpdateDTO{
		Name:    r.Name,
		DueDate: r.DueDate,
		Done:    r.Done,
	}
}

type Todo struct {
	UserId        string  `json:"userId"`
	TodoId        string  `json:"todoId"`
	CreatedAt     string  `json:"createdAt"`
	Name          string  `json:"name"`
	DueDate       string  `json:"dueDate"`
	Done          bool    `json:"done"`
	AttachmentUrl *string `json:"attachmentUrl,omitempty"`
}

func NewTodo(dto data.TodoDTO) Todo {
	return Todo{
		UserId:        dto.UserId,
		TodoId:        dto.TodoId,
		CreatedAt:     dto.CreatedAt,
		Name:          dto.Name,
		DueDate:       dto.DueDate,
		Done:          dto.Done,
		AttachmentUrl: dto.AttachmentUrl,
	}
}

// TodoEnvelope shares the "item" key with items.
type TodoEnvelope struct {
	Item *Todo `json:"item,omitempty"`
}

func NewTodoEnvelope(dto data.TodoDTO) TodoEnvelope {
	todo := NewTodo(dto)
	return TodoEnvelope{Item: &todo}
}

func NewDeletedEnvelope(dto *data.TodoDTO) TodoEnvelope {
	if dto == nil {
		return TodoEnvelope{}
	}
	return NewTodoEnvelope(*dto)
}

type UploadUrl struct {
	UploadUrl string `json:"uploadUrl"`
}

func NewUploadUrl(url string) UploadUrl {
	return UploadUrl{UploadUrl: url}
}
