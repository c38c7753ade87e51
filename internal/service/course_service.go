// FILE: internal/service/course_service.go
package service

import (
	"context"
	"errors"
	"time"

	"auditpath-quiz-be/internal/constant"
	"auditpath-quiz-be/internal/dto"
	"auditpath-quiz-be/internal/entity"
	"auditpath-quiz-be/internal/repository/specification"
	"auditpath-quiz-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

type ICourseService interface {
	Create(ctx context.Context, userId uuid.UUID, req *dto.CreateCourseRequest) (*dto.CourseResponse, error)
	List(ctx context.Context, userId uuid.UUID) ([]dto.CourseResponse, error)
	Delete(ctx context.Context, userId, courseId uuid.UUID) error
	AddChunk(ctx context.Context, userId, courseId uuid.UUID, req *dto.CreateChunkRequest) (*dto.ChunkResponse, error)
	ListChunks(ctx context.Context, userId, courseId uuid.UUID) ([]dto.ChunkResponse, error)
}

type courseService struct {
	uowFactory unitofwork.RepositoryFactory
}

func NewCourseService(uowFactory unitofwork.RepositoryFactory) ICourseService {
	return &courseService{
		uowFactory: uowFactory,
	}
}

func (s *courseService) Create(ctx context.Context, userId uuid.UUID, req *dto.CreateCourseRequest) (*dto.CourseResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	course := &entity.Course{
		Id:             uuid.New(),
		UserId:         userId,
		Name:           req.Name,
		CurrentSession: 1,
		CreatedAt:      time.Now(),
	}

	if err := uow.CourseRepository().Create(ctx, course); err != nil {
		return nil, err
	}

	return toCourseResponse(course), nil
}

func (s *courseService) List(ctx context.Context, userId uuid.UUID) ([]dto.CourseResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	courses, err := uow.CourseRepository().FindAll(ctx,
		specification.OwnedBy{UserID: userId},
		specification.OrderBy{Field: "created_at", Desc: true},
	)
	if err != nil {
		return nil, err
	}

	res := make([]dto.CourseResponse, 0, len(courses))
	for _, c := range courses {
		res = append(res, *toCourseResponse(c))
	}
	return res, nil
}

func (s *courseService) Delete(ctx context.Context, userId, courseId uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	course, err := uow.CourseRepository().FindOne(ctx,
		specification.ByID{ID: courseId},
		specification.OwnedBy{UserID: userId},
	)
	if err != nil {
		return err
	}
	if course == nil {
		return errors.New("course not found")
	}

	return uow.CourseRepository().Delete(ctx, courseId)
}

func (s *courseService) AddChunk(ctx context.Context, userId, courseId uuid.UUID, req *dto.CreateChunkRequest) (*dto.ChunkResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	course, err := uow.CourseRepository().FindOne(ctx,
		specification.ByID{ID: courseId},
		specification.OwnedBy{UserID: userId},
	)
	if err != nil {
		return nil, err
	}
	if course == nil {
		return nil, errors.New("course not found")
	}

	chunk := &entity.Chunk{
		Id:        uuid.New(),
		CourseId:  courseId,
		Title:     req.Title,
		Content:   req.Content,
		Status:    constant.ChunkStatusIdle,
		CreatedAt: time.Now(),
	}

	if err := uow.ChunkRepository().Create(ctx, chunk); err != nil {
		return nil, err
	}

	return toChunkResponse(chunk), nil
}

func (s *courseService) ListChunks(ctx context.Context, userId, courseId uuid.UUID) ([]dto.ChunkResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	course, err := uow.CourseRepository().FindOne(ctx,
		specification.ByID{ID: courseId},
		specification.OwnedBy{UserID: userId},
	)
	if err != nil {
		return nil, err
	}
	if course == nil {
		return nil, errors.New("course not found")
	}

	chunks, err := uow.ChunkRepository().FindAll(ctx,
		specification.ByCourse{CourseID: courseId},
		specification.OrderBy{Field: "created_at", Desc: false},
	)
	if err != nil {
		return nil, err
	}

	res := make([]dto.ChunkResponse, 0, len(chunks))
	for _, c := range chunks {
		res = append(res, *toChunkResponse(c))
	}
	return res, nil
}

func toCourseResponse(c *entity.Course) *dto.CourseResponse {
	return &dto.CourseResponse{
		Id:             c.Id,
		Name:           c.Name,
		CurrentSession: c.CurrentSession,
		CreatedAt:      c.CreatedAt,
	}
}

func toChunkResponse(c *entity.Chunk) *dto.ChunkResponse {
	return &dto.ChunkResponse{
		Id:        c.Id,
		CourseId:  c.CourseId,
		Title:     c.Title,
		Status:    c.Status,
		CreatedAt: c.CreatedAt,
	}
}
