package service

import (
	"context"

	"github.com/gmodebadze/edu_platform/internal/apperr"
	"github.com/gmodebadze/edu_platform/internal/logging"
	"github.com/gmodebadze/edu_platform/internal/models"
	"github.com/gmodebadze/edu_platform/internal/repo"
	"github.com/gmodebadze/edu_platform/internal/util"
)

type CourseService struct {
	Courses *repo.CourseRepo
}

type CoursePage struct {
	Courses    []models.Course `json:"courses"`
	TotalCount int64           `json:"totalCount"`
}

func (s *CourseService) Create(ctx context.Context, owner *models.User, title, description string, price float64, imageURL string) (*models.Course, error) {
	l := logging.FromContext(ctx).With("svc", "course.create", "user_id", owner.ID)

	course := models.Course{
		CourseTitle: title,
		UserID:      owner.ID,
		Description: description,
		Price:       price,
		ImageURL:    imageURL,
	}
	if err := s.Courses.Create(ctx, &course); err != nil {
		l.Error("course_create_failed", "status", 500, "error", err)
		return nil, err
	}

	l.Info("course_created", "course_id", course.ID)
	return &course, nil
}

func (s *CourseService) Get(ctx context.Context, id uint) (*models.Course, error) {
	return s.Courses.FindByID(ctx, id)
}

func (s *CourseService) List(ctx context.Context, page int) (*CoursePage, error) {
	return s.listOrdered(ctx, page, "id DESC")
}

func (s *CourseService) SortByPriceHighToLow(ctx context.Context, page int) (*CoursePage, error) {
	return s.listOrdered(ctx, page, "price DESC")
}

func (s *CourseService) SortByPriceLowToHigh(ctx context.Context, page int) (*CoursePage, error) {
	return s.listOrdered(ctx, page, "price ASC")
}

func (s *CourseService) listOrdered(ctx context.Context, page int, order string) (*CoursePage, error) {
	offset, limit := util.Calculate(page, util.DefaultPageSize)
	courses, total, err := s.Courses.List(ctx, order, offset, limit)
	if err != nil {
		return nil, err
	}
	return &CoursePage{Courses: courses, TotalCount: total}, nil
}

// Edit merges only the supplied fields, empty values keep the old ones.
func (s *CourseService) Edit(ctx context.Context, id uint, title, description string, price float64, imageURL string) (*models.Course, error) {
	l := logging.FromContext(ctx).With("svc", "course.edit", "course_id", id)

	course, err := s.Courses.FindByID(ctx, id)
	if err != nil {
		l.Warn("course_edit_failed", "status", apperr.Status(err), "error", err)
		return nil, err
	}

	if title != "" {
		course.CourseTitle = title
	}
	if description != "" {
		course.Description = description
	}
	if price != 0 {
		course.Price = price
	}
	if imageURL != "" {
		course.ImageURL = imageURL
	}

	if err := s.Courses.Save(ctx, course); err != nil {
		l.Error("course_edit_failed", "status", 500, "error", err)
		return nil, err
	}

	l.Info("course_edited")
	return course, nil
}

func (s *CourseService) Delete(ctx context.Context, id uint) error {
	l := logging.FromContext(ctx).With("svc", "course.delete", "course_id", id)

	if err := s.Courses.Delete(ctx, id); err != nil {
		l.Warn("course_delete_failed", "status", apperr.Status(err), "error", err)
		return err
	}

	l.Info("course_deleted")
	return nil
}
