package services

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/codely-ge/api-go/models"
	"gorm.io/gorm"
)

type CommentService struct {
	DB            *gorm.DB
	Notifications *NotificationService
}

func NewCommentService(db *gorm.DB, notifications *NotificationService) *CommentService {
	return &CommentService{DB: db, Notifications: notifications}
}

// ListThread returns the lesson's top-level comments, pinned ones first and
// the rest newest-first, each carrying its replies oldest-first. The whole
// thread is assembled from a single query.
func (cs *CommentService) ListThread(lessonID uint) ([]models.Comment, error) {
	var lesson models.Lesson
	if err := cs.DB.Select("id").First(&lesson, lessonID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Resource: "lesson"}
		}
		return nil, &PersistenceError{Err: err}
	}

	var flat []models.Comment
	if err := cs.DB.Preload("User").
		Where("lesson_id = ?", lessonID).
		Order("created_at ASC").
		Find(&flat).Error; err != nil {
		return nil, &PersistenceError{Err: err}
	}

	replies := make(map[uint][]models.Comment)
	tops := make([]models.Comment, 0, len(flat))
	for _, c := range flat {
		if c.ParentID != nil {
			replies[*c.ParentID] = append(replies[*c.ParentID], c)
			continue
		}
		tops = append(tops, c)
	}

	sort.SliceStable(tops, func(i, j int) bool {
		if tops[i].IsPinned != tops[j].IsPinned {
			return tops[i].IsPinned
		}
		return tops[i].CreatedAt.After(tops[j].CreatedAt)
	})

	for i := range tops {
		tops[i].Replies = replies[tops[i].ID]
		if tops[i].Replies == nil {
			tops[i].Replies = []models.Comment{}
		}
	}

	return tops, nil
}

// PostComment creates a comment or a reply. Replies to replies are flattened
// onto the thread's top-level comment, so nesting never exceeds one level.
func (cs *CommentService) PostComment(lessonID, authorID uint, content string, parentID *uint) (*models.Comment, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, &ValidationError{Msg: "comment content cannot be empty"}
	}

	var lesson models.Lesson
	if err := cs.DB.Select("id", "title").First(&lesson, lessonID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Resource: "lesson"}
		}
		return nil, &PersistenceError{Err: err}
	}

	var parent *models.Comment
	if parentID != nil {
		var p models.Comment
		if err := cs.DB.First(&p, *parentID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, &NotFoundError{Resource: "parent comment"}
			}
			return nil, &PersistenceError{Err: err}
		}
		if p.LessonID != lessonID {
			return nil, &NotFoundError{Resource: "parent comment"}
		}
		if p.ParentID != nil {
			// Flatten onto the top-level comment of the thread.
			var top models.Comment
			if err := cs.DB.First(&top, *p.ParentID).Error; err != nil {
				return nil, &PersistenceError{Err: err}
			}
			p = top
		}
		parent = &p
		parentID = &p.ID
	}

	comment := models.Comment{
		LessonID: lessonID,
		UserID:   authorID,
		ParentID: parentID,
		Content:  content,
	}
	if err := cs.DB.Create(&comment).Error; err != nil {
		return nil, &PersistenceError{Err: err}
	}

	if parent != nil && parent.UserID != authorID {
		_, _ = cs.Notifications.Create(parent.UserID, models.NotificationTypeReply,
			"New reply to your comment",
			fmt.Sprintf("Someone replied to your comment on \"%s\".", lesson.Title))
	}

	if err := cs.DB.Preload("User").First(&comment, comment.ID).Error; err != nil {
		return nil, &PersistenceError{Err: err}
	}

	return &comment, nil
}

// MarkBestAnswer flags a top-level comment as the thread's best answer. The
// flag moves in a single conditional UPDATE over the lesson's top-level
// comments, so concurrent calls always leave exactly one winner. Replies are
// not eligible.
func (cs *CommentService) MarkBestAnswer(commentID uint, capability Capability) (*models.Comment, error) {
	if !capability.IsOwner && !capability.IsAdmin {
		return nil, &AuthorizationError{Msg: "only the course owner or an admin can mark a best answer"}
	}

	var comment models.Comment
	if err := cs.DB.First(&comment, commentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Resource: "comment"}
		}
		return nil, &PersistenceError{Err: err}
	}

	if comment.ParentID != nil {
		return nil, &ValidationError{Msg: "a reply cannot be marked as best answer"}
	}

	// Every top-level sibling's flag becomes (id = target) in one statement,
	// so two racing calls cannot both end up flagged.
	if err := cs.DB.Model(&models.Comment{}).
		Where("lesson_id = ? AND parent_id IS NULL", comment.LessonID).
		Update("is_best_answer", gorm.Expr("id = ?", comment.ID)).Error; err != nil {
		return nil, &PersistenceError{Err: err}
	}

	comment.IsBestAnswer = true
	_, _ = cs.Notifications.Create(comment.UserID, models.NotificationTypeBestAnswer,
		"Your answer was marked as best",
		"An instructor marked your comment as the best answer.")

	return &comment, nil
}

// DeleteComment removes a comment and, for top-level comments, all of its
// replies in the same transaction. Permitted for the author or an admin.
func (cs *CommentService) DeleteComment(commentID, actorID uint, capability Capability) error {
	var comment models.Comment
	if err := cs.DB.First(&comment, commentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &NotFoundError{Resource: "comment"}
		}
		return &PersistenceError{Err: err}
	}

	if comment.UserID != actorID && !capability.IsAdmin {
		return &AuthorizationError{Msg: "you can only delete your own comments"}
	}

	err := cs.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("parent_id = ?", comment.ID).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		return tx.Delete(&comment).Error
	})
	if err != nil {
		return &PersistenceError{Err: err}
	}

	return nil
}
