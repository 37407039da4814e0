package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/skillchain/skillchain-backend/internal/logger"
	"github.com/skillchain/skillchain-backend/internal/models"
	"github.com/skillchain/skillchain-backend/internal/pkg/apperror"
	"github.com/skillchain/skillchain-backend/internal/validation"
)

// SwapRepository описывает зависимости SwapService от слоя хранилища.
type SwapRepository interface {
	Create(ctx context.Context, swap *models.Swap) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Swap, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) (*models.Swap, error)
	Delete(ctx context.Context, id uuid.UUID) error
	ListByFrom(ctx context.Context, userID uuid.UUID) ([]models.Swap, error)
	ListByTo(ctx context.Context, userID uuid.UUID) ([]models.Swap, error)
	ListAll(ctx context.Context, limit, offset int) ([]models.Swap, error)
	CountAll(ctx context.Context) (int, error)
}

// SwapProfileRepository предоставляет профили для денормализации имён и
// учёта завершённых обменов.
type SwapProfileRepository interface {
	GetProfile(ctx context.Context, userID uuid.UUID) (*models.Profile, error)
	IncrementCompletedSwaps(ctx context.Context, userID uuid.UUID) error
}

// SwapNotifier рассылает уведомления о событиях обменов.
type SwapNotifier interface {
	NotifySwapEvent(ctx context.Context, userID uuid.UUID, event string, swap *models.Swap)
}

// SwapService инкапсулирует бизнес-логику запросов на обмен навыками.
type SwapService struct {
	repo     SwapRepository
	profiles SwapProfileRepository
	notifier SwapNotifier
}

// NewSwapService создаёт сервис обменов.
func NewSwapService(repo SwapRepository, profiles SwapProfileRepository, notifier SwapNotifier) *SwapService {
	return &SwapService{
		repo:     repo,
		profiles: profiles,
		notifier: notifier,
	}
}

// CreateSwapInput содержит данные нового запроса на обмен.
type CreateSwapInput struct {
	ToID         uuid.UUID
	SkillOffered string
	SkillWanted  string
	Message      *string
}

// CreateSwap создаёт запрос на обмен. Статус нового запроса всегда pending,
// значение от вызывающей стороны игнорируется.
func (s *SwapService) CreateSwap(ctx context.Context, fromID uuid.UUID, in CreateSwapInput) (*models.Swap, error) {
	if fromID == in.ToID {
		return nil, apperror.New(apperror.ErrCodeValidation, "нельзя отправить запрос на обмен самому себе")
	}

	if err := validation.ValidateNonEmpty("предлагаемый навык", in.SkillOffered); err != nil {
		return nil, apperror.New(apperror.ErrCodeValidation, err.Error())
	}
	if err := validation.ValidateNonEmpty("искомый навык", in.SkillWanted); err != nil {
		return nil, apperror.New(apperror.ErrCodeValidation, err.Error())
	}
	if err := validation.ValidateSwapMessage(in.Message); err != nil {
		return nil, apperror.New(apperror.ErrCodeValidation, err.Error())
	}

	fromProfile, err := s.profiles.GetProfile(ctx, fromID)
	if err != nil {
		return nil, fmt.Errorf("swap service: профиль отправителя: %w", err)
	}

	toProfile, err := s.profiles.GetProfile(ctx, in.ToID)
	if err != nil {
		return nil, apperror.New(apperror.ErrCodeNotFound, "получатель не найден")
	}

	swap := &models.Swap{
		FromID:       fromID,
		ToID:         in.ToID,
		FromName:     fromProfile.Name,
		ToName:       toProfile.Name,
		SkillOffered: in.SkillOffered,
		SkillWanted:  in.SkillWanted,
		Message:      in.Message,
		Status:       models.SwapStatusPending,
	}

	if err := s.repo.Create(ctx, swap); err != nil {
		return nil, err
	}

	if s.notifier != nil {
		s.notifier.NotifySwapEvent(ctx, swap.ToID, "swap_requested", swap)
	}

	return swap, nil
}

// SetStatus переводит обмен в новый статус. Допустим любой переход между
// валидными статусами, но менять обмен может только его сторона или
// администратор. Переход в completed увеличивает счётчик завершённых
// обменов обеих сторон.
func (s *SwapService) SetStatus(ctx context.Context, callerID uuid.UUID, callerRole string, swapID uuid.UUID, status string) (*models.Swap, error) {
	if _, ok := models.ValidSwapStatuses[status]; !ok {
		return nil, apperror.New(apperror.ErrCodeValidation, fmt.Sprintf("недопустимый статус обмена: %s", status))
	}

	swap, err := s.repo.GetByID(ctx, swapID)
	if err != nil {
		return nil, err
	}

	if !isSwapParty(swap, callerID) && callerRole != models.RoleAdmin {
		return nil, apperror.ErrForbidden
	}

	wasCompleted := swap.Status == models.SwapStatusCompleted

	updated, err := s.repo.UpdateStatus(ctx, swapID, status)
	if err != nil {
		return nil, err
	}

	// Счётчик растёт только при первом переходе в completed
	if status == models.SwapStatusCompleted && !wasCompleted {
		if err := s.profiles.IncrementCompletedSwaps(ctx, updated.FromID); err != nil {
			logger.Log.WithField("user_id", updated.FromID).WithError(err).Warn("swap service: не удалось обновить счётчик обменов")
		}
		if err := s.profiles.IncrementCompletedSwaps(ctx, updated.ToID); err != nil {
			logger.Log.WithField("user_id", updated.ToID).WithError(err).Warn("swap service: не удалось обновить счётчик обменов")
		}
	}

	if s.notifier != nil {
		// Уведомляем противоположную сторону
		recipient := updated.FromID
		if callerID == updated.FromID {
			recipient = updated.ToID
		}
		s.notifier.NotifySwapEvent(ctx, recipient, "swap_"+status, updated)
	}

	return updated, nil
}

// DeleteSwap удаляет запись обмена. Удалять может любая из сторон или администратор.
func (s *SwapService) DeleteSwap(ctx context.Context, callerID uuid.UUID, callerRole string, swapID uuid.UUID) error {
	swap, err := s.repo.GetByID(ctx, swapID)
	if err != nil {
		return err
	}

	if !isSwapParty(swap, callerID) && callerRole != models.RoleAdmin {
		return apperror.ErrForbidden
	}

	return s.repo.Delete(ctx, swapID)
}

// GetSwap возвращает обмен, доступный вызывающему.
func (s *SwapService) GetSwap(ctx context.Context, callerID uuid.UUID, callerRole string, swapID uuid.UUID) (*models.Swap, error) {
	swap, err := s.repo.GetByID(ctx, swapID)
	if err != nil {
		return nil, err
	}

	if !isSwapParty(swap, callerID) && callerRole != models.RoleAdmin {
		return nil, apperror.ErrForbidden
	}

	return swap, nil
}

// ListSent возвращает обмены, отправленные пользователем.
func (s *SwapService) ListSent(ctx context.Context, userID uuid.UUID) ([]models.Swap, error) {
	return s.repo.ListByFrom(ctx, userID)
}

// ListReceived возвращает обмены, адресованные пользователю.
func (s *SwapService) ListReceived(ctx context.Context, userID uuid.UUID) ([]models.Swap, error) {
	return s.repo.ListByTo(ctx, userID)
}

// ListAll возвращает все обмены с пагинацией. Доступно только администратору.
func (s *SwapService) ListAll(ctx context.Context, callerRole string, limit, offset int) ([]models.Swap, int, error) {
	if callerRole != models.RoleAdmin {
		return nil, 0, apperror.ErrForbidden
	}

	swaps, err := s.repo.ListAll(ctx, limit, offset)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.repo.CountAll(ctx)
	if err != nil {
		return nil, 0, err
	}

	return swaps, total, nil
}

func isSwapParty(swap *models.Swap, userID uuid.UUID) bool {
	return swap.FromID == userID || swap.ToID == userID
}
