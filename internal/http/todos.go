package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"mytodo-server/internal/service"
)

type createTodoRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
}

func (h *Handler) createTodo(c *gin.Context) {
	var req createTodoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		failWith(c, http.StatusBadRequest, "Title is required")
		return
	}

	todo, err := h.todos.Create(c.Request.Context(), currentUserID(c), req.Title, req.Description)
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Todo created successfully",
		"data":    todoToResponse(*todo),
	})
}

func (h *Handler) listTodos(c *gin.Context) {
	todos, err := h.todos.List(c.Request.Context(), currentUserID(c))
	if err != nil {
		h.fail(c, err)
		return
	}

	resp := make([]todoResponse, len(todos))
	for i := range todos {
		resp[i] = todoToResponse(todos[i])
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": resp})
}

type updateTodoRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Completed   *bool   `json:"completed"`
}

func (h *Handler) updateTodo(c *gin.Context) {
	id, ok := todoID(c)
	if !ok {
		return
	}

	var req updateTodoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		failWith(c, http.StatusBadRequest, "invalid request body")
		return
	}

	todo, err := h.todos.Update(c.Request.Context(), currentUserID(c), id, service.TodoUpdate{
		Title:       req.Title,
		Description: req.Description,
		Completed:   req.Completed,
	})
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Todo updated",
		"data":    todoToResponse(*todo),
	})
}

func (h *Handler) deleteTodo(c *gin.Context) {
	id, ok := todoID(c)
	if !ok {
		return
	}

	if err := h.todos.Delete(c.Request.Context(), currentUserID(c), id); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Todo deleted"})
}

func todoID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		failWith(c, http.StatusBadRequest, "invalid todo id")
		return 0, false
	}
	return id, true
}
