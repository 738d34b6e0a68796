package services

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"classroom-backend/models"
)

// IssueService manages room problem reports: teachers file them, the
// dispatcher works the unresolved queue.
type IssueService struct {
	db *gorm.DB
}

func NewIssueService(db *gorm.DB) *IssueService {
	return &IssueService{db: db}
}

type CreateIssueRequest struct {
	UserID      uint
	RoomID      uint
	Issues      string
	Description string
	ImagePath   string
}

func (s *IssueService) CreateIssue(req CreateIssueRequest) (*models.RoomIssue, error) {
	if len(req.Issues) < 5 || len(req.Issues) > 500 {
		return nil, errors.New("issue summary must be between 5 and 500 characters")
	}
	if len(req.Description) > 1000 {
		return nil, errors.New("description must not exceed 1000 characters")
	}

	var user models.User
	if err := s.db.First(&user, req.UserID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("user %d: %w", req.UserID, models.ErrNotFound)
		}
		return nil, err
	}
	var room models.Room
	if err := s.db.First(&room, req.RoomID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("room %d: %w", req.RoomID, models.ErrNotFound)
		}
		return nil, err
	}

	issue := &models.RoomIssue{
		UserID:      req.UserID,
		RoomID:      req.RoomID,
		Issues:      req.Issues,
		Description: req.Description,
		ImagePath:   req.ImagePath,
	}
	if err := s.db.Create(issue).Error; err != nil {
		return nil, err
	}
	return issue, nil
}

func (s *IssueService) GetIssueByID(id uint) (*models.RoomIssue, error) {
	var issue models.RoomIssue
	if err := s.db.Preload("Room").Preload("User").First(&issue, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("issue %d: %w", id, models.ErrNotFound)
		}
		return nil, err
	}
	return &issue, nil
}

func (s *IssueService) GetIssuesByUser(userID uint) ([]models.RoomIssue, error) {
	var issues []models.RoomIssue
	err := s.db.Preload("Room").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&issues).Error
	return issues, err
}

func (s *IssueService) GetAllIssues() ([]models.RoomIssue, error) {
	var issues []models.RoomIssue
	err := s.db.Preload("Room").Order("created_at DESC").Find(&issues).Error
	return issues, err
}

// GetUnresolvedIssues is the dispatcher's work queue, oldest first.
func (s *IssueService) GetUnresolvedIssues() ([]models.RoomIssue, error) {
	var issues []models.RoomIssue
	err := s.db.Preload("Room").
		Where("is_resolved = ?", false).
		Order("created_at").
		Find(&issues).Error
	return issues, err
}

// MarkResolved closes an issue, recording the resolving user. Resolving an
// already closed issue is an invalid state.
func (s *IssueService) MarkResolved(issueID, userID uint) (*models.RoomIssue, error) {
	var issue models.RoomIssue
	if err := s.db.First(&issue, issueID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("issue %d: %w", issueID, models.ErrNotFound)
		}
		return nil, err
	}
	if issue.IsResolved {
		return nil, fmt.Errorf("issue %d is already resolved: %w", issueID, models.ErrInvalidState)
	}

	now := time.Now()
	issue.IsResolved = true
	issue.ResolvedAt = &now
	issue.ResolvedByID = userID
	if err := s.db.Save(&issue).Error; err != nil {
		return nil, err
	}
	return &issue, nil
}

// DeleteIssue removes a report. Only the author or an admin may delete.
func (s *IssueService) DeleteIssue(issueID, userID uint) error {
	var issue models.RoomIssue
	if err := s.db.First(&issue, issueID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("issue %d: %w", issueID, models.ErrNotFound)
		}
		return err
	}

	if issue.UserID != userID {
		var user models.User
		if err := s.db.First(&user, userID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("user %d: %w", userID, models.ErrNotFound)
			}
			return err
		}
		if user.Role != models.RoleAdmin {
			return fmt.Errorf("issue %d belongs to another user: %w", issueID, models.ErrForbidden)
		}
	}
	return s.db.Delete(&issue).Error
}
