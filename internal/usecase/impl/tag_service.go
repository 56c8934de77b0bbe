package impl

import (
	"context"
	"log/slog"

	deliverycontext "crm/internal/delivery/context"
	"crm/internal/domain/entity"
	domainerrors "crm/internal/domain/errors"
	"crm/internal/domain/query"
	"crm/internal/domain/repository"
	"crm/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// tagService implements the TagUsecase interface.
type tagService struct {
	txManager repository.TransactionManager
	tagRepo   repository.TagRepository
	logger    *slog.Logger
}

// TagServiceParams holds dependencies for tagService, injected by Fx.
type TagServiceParams struct {
	fx.In

	TxManager repository.TransactionManager
	TagRepo   repository.TagRepository
	Logger    *slog.Logger
}

// NewTagService is the constructor for tagService.
func NewTagService(params TagServiceParams) usecase.TagUsecase {
	return &tagService{
		txManager: params.TxManager,
		tagRepo:   params.TagRepo,
		logger:    params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *tagService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// CreateTag validates the input and persists a new tag. The type is optional;
// an untyped tag can still be attached to any entity.
func (srv *tagService) CreateTag(ctx context.Context, input *usecase.CreateTagInput) (*entity.Tag, error) {
	tagType := entity.TagType(input.Type)
	if input.Type != "" && !tagType.IsValid() {
		return nil, domainerrors.ErrValidationFailed.WithDetails("unknown tag type: " + input.Type)
	}

	tag := &entity.Tag{
		Name:        input.Name,
		Color:       input.Color,
		Description: input.Description,
		Type:        tagType,
	}

	if err := srv.tagRepo.Create(ctx, tag); err != nil {
		if errors.Is(err, repository.ErrDuplicateTagName) {
			return nil, domainerrors.ErrDuplicateTagName
		}

		srv.log(ctx).Error("Failed to create tag", slog.String("name", input.Name), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to create tag")
	}

	return tag, nil
}

// GetTag retrieves a tag with its related collections.
func (srv *tagService) GetTag(ctx context.Context, id uuid.UUID) (*entity.Tag, error) {
	tag, err := srv.tagRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrTagNotFound) {
			return nil, domainerrors.ErrTagNotFound
		}

		return nil, errors.Wrap(err, "failed to get tag")
	}

	return tag, nil
}

// ListTags returns one page of tags under the supplied predicate.
func (srv *tagService) ListTags(ctx context.Context, input *usecase.ListTagsInput) (*query.Page[*entity.Tag], error) {
	if input.Type != "" && !entity.TagType(input.Type).IsValid() {
		return nil, domainerrors.ErrValidationFailed.WithDetails("unknown tag type: " + input.Type)
	}

	tags, total, err := srv.tagRepo.List(ctx, repository.TagListOptions{
		Search: input.Search,
		Type:   entity.TagType(input.Type),
		Page:   input.Page,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to list tags")
	}

	return &query.Page[*entity.Tag]{
		Items:    tags,
		PageInfo: query.NewPageInfo(input.Page, total),
	}, nil
}

// UpdateTag applies a partial update to an existing tag.
func (srv *tagService) UpdateTag(ctx context.Context, id uuid.UUID, input *usecase.UpdateTagInput) (*entity.Tag, error) {
	tag, err := srv.tagRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrTagNotFound) {
			return nil, domainerrors.ErrTagNotFound
		}

		return nil, errors.Wrap(err, "failed to find tag for update")
	}

	if input.Name != nil {
		tag.Name = *input.Name
	}
	if input.Color != nil {
		tag.Color = *input.Color
	}
	if input.Description != nil {
		tag.Description = *input.Description
	}
	if input.Type != nil {
		tagType := entity.TagType(*input.Type)
		if !tagType.IsValid() {
			return nil, domainerrors.ErrValidationFailed.WithDetails("unknown tag type: " + *input.Type)
		}
		tag.Type = tagType
	}

	if err := srv.tagRepo.Update(ctx, tag); err != nil {
		if errors.Is(err, repository.ErrDuplicateTagName) {
			return nil, domainerrors.ErrDuplicateTagName
		}
		if errors.Is(err, repository.ErrTagNotFound) {
			return nil, domainerrors.ErrTagNotFound
		}

		return nil, errors.Wrap(err, "failed to update tag")
	}

	return tag, nil
}

// DeleteTag removes a tag unless it is attached to any entity. The attachment
// count and the delete run inside one transaction.
func (srv *tagService) DeleteTag(ctx context.Context, id uuid.UUID) error {
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		tagRepo := repoFactory.NewTagRepository()

		attachments, err := tagRepo.CountAttachments(ctx, id)
		if err != nil {
			return errors.Wrap(err, "failed to count tag attachments")
		}
		if attachments > 0 {
			return domainerrors.ErrTagInUse
		}

		if err := tagRepo.Delete(ctx, id); err != nil {
			if errors.Is(err, repository.ErrTagNotFound) {
				return domainerrors.ErrTagNotFound
			}

			return errors.Wrap(err, "failed to delete tag")
		}

		return nil
	})
	if err != nil {
		return err
	}

	srv.log(ctx).Info("Tag deleted", slog.Any("tagID", id))

	return nil
}
