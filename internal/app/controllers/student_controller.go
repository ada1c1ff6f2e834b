package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/hostelsphere/internal/app/models/dto"
	"github.com/yigit/hostelsphere/internal/app/services"
	"github.com/yigit/hostelsphere/internal/middleware"
	"github.com/yigit/hostelsphere/internal/pkg/helpers"
)

// StudentController handles student record operations
type StudentController struct {
	studentService services.StudentService
}

// NewStudentController creates a new StudentController
func NewStudentController(studentService services.StudentService) *StudentController {
	return &StudentController{
		studentService: studentService,
	}
}

// CreateStudent handles student creation
// @Summary Create a student
// @Description Registers a new student. The student starts without a room.
// @Tags students
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateStudentRequest true "Student information"
// @Success 201 {object} dto.APIResponse{data=dto.StudentResponse} "Student created successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 409 {object} dto.ErrorResponse "Student ID or SID already exists"
// @Router /students [post]
func (c *StudentController) CreateStudent(ctx *gin.Context) {
	var req dto.CreateStudentRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	student, err := c.studentService.CreateStudent(ctx.Request.Context(), req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respond(ctx, http.StatusCreated, student)
}

// IDCards lists printable student identity cards
// @Summary Student ID cards
// @Description Cards are valid for four years from the admission date
// @Tags students
// @Produce json
// @Security BearerAuth
// @Param q query string false "Search over name and SID"
// @Success 200 {object} dto.APIResponse{data=[]dto.IDCardResponse}
// @Router /students/id-cards [get]
func (c *StudentController) IDCards(ctx *gin.Context) {
	cards, err := c.studentService.IDCards(ctx.Request.Context(), ctx.Query("q"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respond(ctx, http.StatusOK, cards)
}

// GetStudent retrieves a student by ID
// @Summary Get student details
// @Tags students
// @Produce json
// @Security BearerAuth
// @Param id path string true "Student ID"
// @Success 200 {object} dto.APIResponse{data=dto.StudentResponse}
// @Failure 404 {object} dto.ErrorResponse "Student not found"
// @Router /students/{id} [get]
func (c *StudentController) GetStudent(ctx *gin.Context) {
	student, err := c.studentService.GetStudent(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respond(ctx, http.StatusOK, student)
}

// ListStudents lists students with search and pagination
// @Summary List students
// @Tags students
// @Produce json
// @Security BearerAuth
// @Param q query string false "Search over name, SID and email"
// @Param assigned query bool false "Only assigned (true) or unassigned (false) students"
// @Param page query int false "Page number" default(1)
// @Param size query int false "Page size" default(20)
// @Success 200 {object} dto.APIResponse{data=dto.PaginatedResponse[dto.StudentResponse]}
// @Router /students [get]
func (c *StudentController) ListStudents(ctx *gin.Context) {
	assigned, ok := optionalBool(ctx, "assigned")
	if !ok {
		badRequest(ctx, "Invalid query parameter", "assigned must be true or false")
		return
	}
	page, size := helpers.ParsePaginationParams(ctx)

	students, err := c.studentService.ListStudents(ctx.Request.Context(), services.StudentFilter{
		Query:    ctx.Query("q"),
		Assigned: assigned,
		Page:     page,
		Size:     size,
	})
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respond(ctx, http.StatusOK, students)
}

// UpdateStudent patches a student record
// @Summary Update a student
// @Description Only the fields present in the body are changed
// @Tags students
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Student ID"
// @Param request body dto.UpdateStudentRequest true "Fields to change"
// @Success 200 {object} dto.APIResponse{data=dto.StudentResponse}
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 404 {object} dto.ErrorResponse "Student not found"
// @Router /students/{id} [patch]
func (c *StudentController) UpdateStudent(ctx *gin.Context) {
	var req dto.UpdateStudentRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	student, err := c.studentService.UpdateStudent(ctx.Request.Context(), ctx.Param("id"), req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respond(ctx, http.StatusOK, student)
}

// DeleteStudent deletes a student and frees their bed
// @Summary Delete a student
// @Tags students
// @Produce json
// @Security BearerAuth
// @Param id path string true "Student ID"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse}
// @Failure 404 {object} dto.ErrorResponse "Student not found"
// @Router /students/{id} [delete]
func (c *StudentController) DeleteStudent(ctx *gin.Context) {
	id := ctx.Param("id")
	if err := c.studentService.DeleteStudent(ctx.Request.Context(), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respond(ctx, http.StatusOK, dto.SuccessResponse{Message: "Student deleted successfully"})
}

// SetCredentials sets the portal login of a student
// @Summary Set student portal credentials
// @Tags students
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Student ID"
// @Param request body dto.SetCredentialsRequest true "SID and password"
// @Success 200 {object} dto.APIResponse{data=dto.StudentResponse}
// @Failure 409 {object} dto.ErrorResponse "SID already in use"
// @Router /students/{id}/credentials [put]
func (c *StudentController) SetCredentials(ctx *gin.Context) {
	var req dto.SetCredentialsRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	student, err := c.studentService.SetCredentials(ctx.Request.Context(), ctx.Param("id"), req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respond(ctx, http.StatusOK, student)
}

// UploadPhoto replaces the photo of a student
// @Summary Upload a student photo
// @Tags students
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param id path string true "Student ID"
// @Param photo formData file true "JPEG, PNG or WebP image"
// @Success 200 {object} dto.APIResponse{data=dto.StudentResponse}
// @Failure 400 {object} dto.ErrorResponse "Missing or unsupported file"
// @Router /students/{id}/photo [post]
func (c *StudentController) UploadPhoto(ctx *gin.Context) {
	fileHeader, err := ctx.FormFile("photo")
	if err != nil {
		badRequest(ctx, "Photo is required", "multipart field 'photo' is missing")
		return
	}

	student, err := c.studentService.UploadPhoto(ctx.Request.Context(), ctx.Param("id"), fileHeader)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respond(ctx, http.StatusOK, student)
}
