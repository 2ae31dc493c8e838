package v1

import (
	"net/http"

	"github.com/hubverse/hub-services/internal/api/rest/middleware"
	"github.com/hubverse/hub-services/internal/api/rest/respond"
	"github.com/hubverse/hub-services/internal/domain/academy"

	"github.com/gin-gonic/gin"
)

// CourseHandler defines the course and lesson endpoints
type CourseHandler interface {
	Create(ctx *gin.Context)
	List(ctx *gin.Context)
	GetByID(ctx *gin.Context)
	Update(ctx *gin.Context)
	DeleteByID(ctx *gin.Context)
	Publish(ctx *gin.Context)
	AddLesson(ctx *gin.Context)
	ListLessons(ctx *gin.Context)
}

type courseHandler struct {
	courseService academy.CourseService
}

// NewCourseHandler creates a new CourseHandler
func NewCourseHandler(courseService academy.CourseService) CourseHandler {
	return &courseHandler{courseService: courseService}
}

// Create opens a draft course taught by the caller
func (handler *courseHandler) Create(ctx *gin.Context) {
	p, ok := caller(ctx)
	if !ok {
		return
	}
	var request CourseRequest
	if !bindJSON(ctx, &request) {
		return
	}

	course, err := handler.courseService.Create(ctx.Request.Context(), p, &academy.CourseInput{
		Title:       request.Title,
		Description: request.Description,
		Level:       request.Level,
	})
	if err != nil {
		respond.Error(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, toCourseResponse(course))
}

// List fetches the courses visible to the caller
func (handler *courseHandler) List(ctx *gin.Context) {
	query := academy.NewCourseQuery()
	if err := bindListQuery(ctx, &query.ListQuery); err != nil {
		respond.Error(ctx, err)
		return
	}
	published, err := boolQuery(ctx, "published")
	if err != nil {
		respond.Error(ctx, err)
		return
	}
	query.Published = published
	query.Level = ctx.Query("level")
	query.InstructorID = ctx.Query("instructor_id")
	query.Search = ctx.Query("q")

	list, err := handler.courseService.List(ctx.Request.Context(), middleware.OptionalPrincipal(ctx), query)
	if err != nil {
		respond.Error(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, mapList(list, toCourseResponse))
}

// GetByID fetches a course; drafts are only visible to their instructor
func (handler *courseHandler) GetByID(ctx *gin.Context) {
	course, err := handler.courseService.Get(ctx.Request.Context(), middleware.OptionalPrincipal(ctx), ctx.Param("id"))
	if err != nil {
		respond.Error(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, toCourseResponse(course))
}

// Update edits a course; instructor or admin only
func (handler *courseHandler) Update(ctx *gin.Context) {
	p, ok := caller(ctx)
	if !ok {
		return
	}
	var request CourseUpdateRequest
	if !bindJSON(ctx, &request) {
		return
	}

	course, err := handler.courseService.Update(ctx.Request.Context(), p, ctx.Param("id"), &academy.CourseUpdate{
		Title:       request.Title,
		Description: request.Description,
		Level:       request.Level,
	})
	if err != nil {
		respond.Error(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, toCourseResponse(course))
}

// DeleteByID deletes a course with its lessons and enrollments
func (handler *courseHandler) DeleteByID(ctx *gin.Context) {
	p, ok := caller(ctx)
	if !ok {
		return
	}
	if err := handler.courseService.DeleteByID(ctx.Request.Context(), p, ctx.Param("id")); err != nil {
		respond.Error(ctx, err)
		return
	}
	ctx.Status(http.StatusNoContent)
}

// Publish makes a course with at least one lesson visible
func (handler *courseHandler) Publish(ctx *gin.Context) {
	p, ok := caller(ctx)
	if !ok {
		return
	}
	course, err := handler.courseService.Publish(ctx.Request.Context(), p, ctx.Param("id"))
	if err != nil {
		respond.Error(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, toCourseResponse(course))
}

// AddLesson appends or inserts a lesson
func (handler *courseHandler) AddLesson(ctx *gin.Context) {
	p, ok := caller(ctx)
	if !ok {
		return
	}
	var request LessonRequest
	if !bindJSON(ctx, &request) {
		return
	}

	lesson, err := handler.courseService.AddLesson(ctx.Request.Context(), p, ctx.Param("id"), &academy.LessonInput{
		Title:    request.Title,
		Content:  request.Content,
		Position: request.Position,
	})
	if err != nil {
		respond.Error(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, toLessonResponse(lesson))
}

// ListLessons returns a course's lessons ordered by position
func (handler *courseHandler) ListLessons(ctx *gin.Context) {
	lessons, err := handler.courseService.ListLessons(ctx.Request.Context(), middleware.OptionalPrincipal(ctx), ctx.Param("id"))
	if err != nil {
		respond.Error(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, mapList(lessons, toLessonResponse))
}

// EnrollmentHandler defines the enrollment endpoints
type EnrollmentHandler interface {
	Enroll(ctx *gin.Context)
	ListMine(ctx *gin.Context)
	UpdateProgress(ctx *gin.Context)
}

type enrollmentHandler struct {
	enrollmentService academy.EnrollmentService
}

// NewEnrollmentHandler creates a new EnrollmentHandler
func NewEnrollmentHandler(enrollmentService academy.EnrollmentService) EnrollmentHandler {
	return &enrollmentHandler{enrollmentService: enrollmentService}
}

// Enroll enrolls the caller in a published course
func (handler *enrollmentHandler) Enroll(ctx *gin.Context) {
	p, ok := caller(ctx)
	if !ok {
		return
	}
	enrollment, err := handler.enrollmentService.Enroll(ctx.Request.Context(), p, ctx.Param("id"))
	if err != nil {
		respond.Error(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, toEnrollmentResponse(enrollment))
}

// ListMine returns the caller's enrollments
func (handler *enrollmentHandler) ListMine(ctx *gin.Context) {
	p, ok := caller(ctx)
	if !ok {
		return
	}
	list, err := handler.enrollmentService.ListForUser(ctx.Request.Context(), p.UserID)
	if err != nil {
		respond.Error(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, mapList(list, toEnrollmentResponse))
}

// UpdateProgress records course progress; it never goes backwards
func (handler *enrollmentHandler) UpdateProgress(ctx *gin.Context) {
	p, ok := caller(ctx)
	if !ok {
		return
	}
	var request ProgressRequest
	if !bindJSON(ctx, &request) {
		return
	}
	if request.Progress == nil {
		respond.Message(ctx, http.StatusBadRequest, "progress is required")
		return
	}

	enrollment, err := handler.enrollmentService.UpdateProgress(ctx.Request.Context(), p, ctx.Param("id"), *request.Progress)
	if err != nil {
		respond.Error(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, toEnrollmentResponse(enrollment))
}
