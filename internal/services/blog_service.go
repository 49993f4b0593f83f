package services

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/chronicleberg/chronicle-be/internal/apierror"
	"github.com/chronicleberg/chronicle-be/internal/assets"
	"github.com/chronicleberg/chronicle-be/internal/models"
	"github.com/chronicleberg/chronicle-be/internal/store"
)

// BlogInput carries the create/update form. The three image slots are
// optional except that create requires MainImage. On update, a nil slot
// leaves the stored asset untouched while every text field is replaced
// wholesale.
type BlogInput struct {
	Title     string
	Intro     string
	Category  string
	Published bool

	ParaOneTitle       string
	ParaOneDescription string
	ParaTwoTitle       string
	ParaTwoDescription string

	MainImage    *assets.Upload
	ParaOneImage *assets.Upload
	ParaTwoImage *assets.Upload
}

// BlogServiceProvider defines the interface for the publishing pipeline.
type BlogServiceProvider interface {
	Create(ctx context.Context, principal models.User, in BlogInput) (models.Blog, error)
	Update(ctx context.Context, principal models.User, id string, in BlogInput) (models.Blog, error)
	Delete(ctx context.Context, principal models.User, id string) error
	GetPublished(ctx context.Context) ([]models.Blog, error)
	GetByID(ctx context.Context, id string) (models.Blog, error)
	GetByAuthor(ctx context.Context, userID string) ([]models.Blog, error)
}

// BlogService orchestrates multi-image upload and document persistence.
type BlogService struct {
	blogs    store.BlogStore
	assets   assets.Store
	orphans  store.OrphanStore
	eventSvc EventServiceProvider
}

// NewBlogService creates a new BlogService.
func NewBlogService(blogs store.BlogStore, assetStore assets.Store, orphans store.OrphanStore, eventSvc EventServiceProvider) *BlogService {
	return &BlogService{blogs: blogs, assets: assetStore, orphans: orphans, eventSvc: eventSvc}
}

// Slot indices for the upload fan-out.
const (
	slotMain = iota
	slotParaOne
	slotParaTwo
	slotCount
)

type uploadResult struct {
	ref models.AssetRef
	err error
}

// uploadAll fans out one upload per supplied slot and joins on all of them.
// Absent slots stay zero-valued in the result.
func (s *BlogService) uploadAll(ctx context.Context, uploads [slotCount]*assets.Upload) [slotCount]uploadResult {
	var results [slotCount]uploadResult
	var wg sync.WaitGroup

	for i, up := range uploads {
		if up == nil {
			continue
		}
		wg.Add(1)
		go func(i int, up assets.Upload) {
			defer wg.Done()
			ref, err := s.assets.Upload(ctx, up)
			results[i] = uploadResult{ref: ref, err: err}
		}(i, *up)
	}
	wg.Wait()
	return results
}

// rollbackUploads compensates for a rejected operation by deleting every
// asset that did make it to remote storage. A failed delete is queued for
// the sweeper and never masks the original error.
func (s *BlogService) rollbackUploads(ctx context.Context, reason string, refs ...models.AssetRef) {
	for _, ref := range refs {
		if ref.PublicID == "" {
			continue
		}
		if err := s.assets.Delete(ctx, ref.PublicID); err != nil {
			log.Warn().Err(err).Str("public_id", ref.PublicID).Msg("Compensating delete failed, queueing orphan")
			if qErr := s.orphans.Enqueue(ctx, ref.PublicID, reason); qErr != nil {
				log.Error().Err(qErr).Str("public_id", ref.PublicID).Msg("Failed to queue orphan asset")
			}
		}
	}
}

// Create validates the submission, uploads every supplied image
// concurrently, and persists the document only when all uploads succeeded.
// On any upload failure nothing is persisted and successful uploads are
// deleted again.
func (s *BlogService) Create(ctx context.Context, principal models.User, in BlogInput) (models.Blog, error) {
	if in.MainImage == nil {
		return models.Blog{}, apierror.Validation("Please upload blog main image!")
	}
	if err := checkImages(in.MainImage, in.ParaOneImage, in.ParaTwoImage); err != nil {
		return models.Blog{}, err
	}
	if err := checkFields(blogFieldRules(in.Title, in.Intro, in.Category)); err != nil {
		return models.Blog{}, err
	}

	results := s.uploadAll(ctx, [slotCount]*assets.Upload{in.MainImage, in.ParaOneImage, in.ParaTwoImage})

	var failed error
	for _, res := range results {
		if res.err != nil {
			failed = res.err
			break
		}
	}
	if failed != nil {
		s.rollbackUploads(ctx, "create rollback", results[slotMain].ref, results[slotParaOne].ref, results[slotParaTwo].ref)
		return models.Blog{}, apierror.Upload("Error occurred while uploading one or more images!", failed)
	}

	blog := models.Blog{
		ID:        uuid.New().String(),
		Title:     in.Title,
		Intro:     in.Intro,
		Category:  in.Category,
		MainImage: results[slotMain].ref,

		ParaOneTitle:       in.ParaOneTitle,
		ParaOneDescription: in.ParaOneDescription,
		ParaTwoTitle:       in.ParaTwoTitle,
		ParaTwoDescription: in.ParaTwoDescription,

		CreatedBy:    principal.ID,
		AuthorName:   principal.Name,
		AuthorAvatar: principal.Avatar.URL,
		Published:    in.Published,
	}
	if in.ParaOneImage != nil {
		ref := results[slotParaOne].ref
		blog.ParaOneImage = &ref
	}
	if in.ParaTwoImage != nil {
		ref := results[slotParaTwo].ref
		blog.ParaTwoImage = &ref
	}

	if err := s.blogs.Create(ctx, blog); err != nil {
		s.rollbackUploads(ctx, "create rollback", results[slotMain].ref, results[slotParaOne].ref, results[slotParaTwo].ref)
		return models.Blog{}, apierror.Store(err)
	}

	s.eventSvc.Record(ctx, "blog.create", "info", "Blog \""+blog.Title+"\" created", &blog.ID)
	return blog, nil
}

// Update replaces the document. Text fields are set wholesale from the
// input. For each image slot with a supplied replacement the new asset is
// uploaded first; the displaced asset is deleted only after the updated
// document is durably persisted, so a slot never holds neither asset.
func (s *BlogService) Update(ctx context.Context, principal models.User, id string, in BlogInput) (models.Blog, error) {
	blog, err := s.blogs.FindByID(ctx, id)
	if err != nil {
		if err == store.ErrNotFound {
			return models.Blog{}, apierror.NotFound("Blog not found!")
		}
		return models.Blog{}, apierror.Store(err)
	}

	if principal.Role != models.RoleAdmin && blog.CreatedBy != principal.ID {
		return models.Blog{}, apierror.Auth("You are not allowed to modify this blog")
	}

	if err := checkImages(in.MainImage, in.ParaOneImage, in.ParaTwoImage); err != nil {
		return models.Blog{}, err
	}
	if err := checkFields(blogFieldRules(in.Title, in.Intro, in.Category)); err != nil {
		return models.Blog{}, err
	}

	results := s.uploadAll(ctx, [slotCount]*assets.Upload{in.MainImage, in.ParaOneImage, in.ParaTwoImage})

	var failed error
	for _, res := range results {
		if res.err != nil {
			failed = res.err
			break
		}
	}
	if failed != nil {
		// The stored document is untouched; only the new uploads need undoing.
		s.rollbackUploads(ctx, "update rollback", results[slotMain].ref, results[slotParaOne].ref, results[slotParaTwo].ref)
		return models.Blog{}, apierror.Upload("Error occurred while uploading one or more images!", failed)
	}

	// Old refs displaced by this update, deleted only after the write lands.
	var displaced []models.AssetRef

	updated := blog
	updated.Title = in.Title
	updated.Intro = in.Intro
	updated.Category = in.Category
	updated.Published = in.Published
	updated.ParaOneTitle = in.ParaOneTitle
	updated.ParaOneDescription = in.ParaOneDescription
	updated.ParaTwoTitle = in.ParaTwoTitle
	updated.ParaTwoDescription = in.ParaTwoDescription

	if in.MainImage != nil {
		displaced = append(displaced, blog.MainImage)
		updated.MainImage = results[slotMain].ref
	}
	if in.ParaOneImage != nil {
		if blog.ParaOneImage != nil {
			displaced = append(displaced, *blog.ParaOneImage)
		}
		ref := results[slotParaOne].ref
		updated.ParaOneImage = &ref
	}
	if in.ParaTwoImage != nil {
		if blog.ParaTwoImage != nil {
			displaced = append(displaced, *blog.ParaTwoImage)
		}
		ref := results[slotParaTwo].ref
		updated.ParaTwoImage = &ref
	}

	if err := s.blogs.Update(ctx, updated); err != nil {
		// The old document still stands, so the new assets are the orphans.
		s.rollbackUploads(ctx, "update rollback", results[slotMain].ref, results[slotParaOne].ref, results[slotParaTwo].ref)
		if err == store.ErrNotFound {
			return models.Blog{}, apierror.NotFound("Blog not found!")
		}
		return models.Blog{}, apierror.Store(err)
	}

	s.rollbackUploads(ctx, "update displaced", displaced...)

	s.eventSvc.Record(ctx, "blog.update", "info", "Blog \""+updated.Title+"\" updated", &updated.ID)
	return updated, nil
}

// Delete removes the document and queues its assets for the sweeper. The
// response never waits on remote deletes.
func (s *BlogService) Delete(ctx context.Context, principal models.User, id string) error {
	blog, err := s.blogs.FindByID(ctx, id)
	if err != nil {
		if err == store.ErrNotFound {
			return apierror.NotFound("Blog not found!")
		}
		return apierror.Store(err)
	}

	if principal.Role != models.RoleAdmin && blog.CreatedBy != principal.ID {
		return apierror.Auth("You are not allowed to modify this blog")
	}

	if err := s.blogs.Delete(ctx, id); err != nil {
		if err == store.ErrNotFound {
			return apierror.NotFound("Blog not found!")
		}
		return apierror.Store(err)
	}

	refs := []models.AssetRef{blog.MainImage}
	if blog.ParaOneImage != nil {
		refs = append(refs, *blog.ParaOneImage)
	}
	if blog.ParaTwoImage != nil {
		refs = append(refs, *blog.ParaTwoImage)
	}
	for _, ref := range refs {
		if err := s.orphans.Enqueue(ctx, ref.PublicID, "blog delete"); err != nil {
			log.Error().Err(err).Str("public_id", ref.PublicID).Msg("Failed to queue orphan asset")
		}
	}

	s.eventSvc.Record(ctx, "blog.delete", "info", "Blog \""+blog.Title+"\" deleted", &blog.ID)
	return nil
}

// GetPublished retrieves all published blogs.
func (s *BlogService) GetPublished(ctx context.Context) ([]models.Blog, error) {
	blogs, err := s.blogs.FindPublished(ctx)
	if err != nil {
		return nil, apierror.Store(err)
	}
	return blogs, nil
}

// GetByID retrieves a single blog.
func (s *BlogService) GetByID(ctx context.Context, id string) (models.Blog, error) {
	blog, err := s.blogs.FindByID(ctx, id)
	if err != nil {
		if err == store.ErrNotFound {
			return models.Blog{}, apierror.NotFound("Blog not found!")
		}
		return models.Blog{}, apierror.Store(err)
	}
	return blog, nil
}

// GetByAuthor retrieves every blog created by the given user.
func (s *BlogService) GetByAuthor(ctx context.Context, userID string) ([]models.Blog, error) {
	blogs, err := s.blogs.FindByAuthor(ctx, userID)
	if err != nil {
		return nil, apierror.Store(err)
	}
	return blogs, nil
}
