package service

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/gosimple/slug"
	"github.com/karobarhq/karobar/internal/business/domain"
	"github.com/karobarhq/karobar/internal/validation"
	"github.com/karobarhq/karobar/pkg/db"
	"github.com/karobarhq/karobar/pkg/db/pagination"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	// Fallback token when a name has no ASCII-representable characters.
	slugFallback = "business"

	// The pre-insert probe is best effort; the unique index decides.
	maxInsertAttempts = 5
	maxProbeSuffix    = 500

	minNameLength = 2
)

var phonePattern = regexp.MustCompile(`^\+[1-9]\d{1,14}$`)

type Params struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	GenID *snowflake.Node
	Repo  domain.Repository
}

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	genID *snowflake.Node
	repo  domain.Repository
}

func New(p Params) domain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("business.service"),
		genID: p.GenID,
		repo:  p.Repo,
	}
}

func (s *Service) Ensure(ctx context.Context, req domain.EnsureRequest) (*domain.Business, bool, error) {
	if req.OwnerID == 0 {
		return nil, false, domain.ErrInvalidOwner
	}

	existing, err := s.repo.FindByOwner(ctx, s.db, req.OwnerID)
	if err != nil {
		return nil, false, err
	}
	if existing != nil {
		return existing, false, nil
	}

	name := strings.TrimSpace(req.DefaultName)
	if name == "" {
		name = "My Business"
	}

	business, err := s.create(ctx, req.OwnerID, name)
	if err != nil {
		return nil, false, err
	}
	return business, true, nil
}

// create inserts a new business, retrying slug allocation when the
// unique index rejects a candidate claimed by a concurrent writer.
func (s *Service) create(ctx context.Context, ownerID snowflake.ID, name string) (*domain.Business, error) {
	candidate, err := s.AllocateSlug(ctx, name)
	if err != nil {
		return nil, err
	}

	base := slugBase(name)
	for attempt := 0; attempt < maxInsertAttempts; attempt++ {
		now := time.Now().UTC()
		business := &domain.Business{
			ID:        s.genID.Generate(),
			OwnerID:   &ownerID,
			Name:      name,
			Slug:      candidate,
			Public:    false,
			CreatedAt: now,
			UpdatedAt: now,
		}

		err := s.repo.Insert(ctx, s.db, business)
		if err == nil {
			s.log.Info("business created",
				zap.String("business_id", business.ID.String()),
				zap.String("slug", business.Slug),
			)
			return business, nil
		}
		if !db.IsDuplicateKeyErr(err) {
			return nil, err
		}

		// The conflict may be the owner index from a racing signup
		// rather than the slug index.
		existing, findErr := s.repo.FindByOwner(ctx, s.db, ownerID)
		if findErr != nil {
			return nil, findErr
		}
		if existing != nil {
			return existing, nil
		}

		candidate, err = s.nextFreeSlug(ctx, base, attempt+1)
		if err != nil {
			return nil, err
		}
	}

	return nil, domain.ErrSlugConflict
}

func (s *Service) FindByOwner(ctx context.Context, ownerID snowflake.ID) (*domain.Business, error) {
	if ownerID == 0 {
		return nil, domain.ErrInvalidOwner
	}
	business, err := s.repo.FindByOwner(ctx, s.db, ownerID)
	if err != nil {
		return nil, err
	}
	if business == nil {
		return nil, domain.ErrNotFound
	}
	return business, nil
}

func (s *Service) UpdateProfile(ctx context.Context, ownerID snowflake.ID, req domain.UpdateProfileRequest) (*domain.Business, error) {
	business, err := s.FindByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	name := strings.TrimSpace(req.Name)
	number := normalizePhone(req.WhatsappNumber)
	if err := validateProfile(name, number).OrNil(); err != nil {
		return nil, err
	}

	fields := map[string]any{
		"name":            name,
		"description":     strings.TrimSpace(req.Description),
		"whatsapp_number": number,
		"city":            strings.TrimSpace(req.City),
		"native_place":    strings.TrimSpace(req.NativePlace),
		"updated_at":      time.Now().UTC(),
	}
	if req.Public != nil {
		fields["public"] = *req.Public
	}

	// The slug never changes on rename; public URLs depend on it.
	if err := s.repo.UpdateFields(ctx, s.db, business.ID, fields); err != nil {
		return nil, err
	}

	return s.repo.FindByOwner(ctx, s.db, ownerID)
}

func (s *Service) AllocateSlug(ctx context.Context, name string) (string, error) {
	return s.nextFreeSlug(ctx, slugBase(name), 0)
}

func (s *Service) ListPublic(ctx context.Context, req domain.ListPublicRequest) (domain.ListPublicResponse, error) {
	pageSize := req.PageSize
	if pageSize <= 0 {
		pageSize = 50
	}

	items, err := s.repo.ListPublic(ctx, s.db, pagination.Pagination{
		PageToken: req.PageToken,
		PageSize:  pageSize,
	})
	if err != nil {
		return domain.ListPublicResponse{}, err
	}

	pageInfo := pagination.BuildCursorPageInfo(items, pageSize, func(business *domain.Business) string {
		token, err := pagination.EncodeCursor(pagination.Cursor{
			ID:        business.ID.String(),
			CreatedAt: business.CreatedAt.Format(time.RFC3339Nano),
		})
		if err != nil {
			return ""
		}
		return token
	})
	if pageInfo.HasMore && len(items) > pageSize {
		items = items[:pageSize]
	}

	businesses := make([]domain.Business, 0, len(items))
	for _, item := range items {
		businesses = append(businesses, *item)
	}

	return domain.ListPublicResponse{
		PageInfo:   *pageInfo,
		Businesses: businesses,
	}, nil
}

// nextFreeSlug probes base, base-1, base-2, ... starting after `from`
// suffixes and returns the first unclaimed candidate.
func (s *Service) nextFreeSlug(ctx context.Context, base string, from int) (string, error) {
	for i := from; i <= maxProbeSuffix; i++ {
		candidate := base
		if i > 0 {
			candidate = fmt.Sprintf("%s-%d", base, i)
		}
		exists, err := s.repo.SlugExists(ctx, s.db, candidate)
		if err != nil {
			return "", err
		}
		if !exists {
			return candidate, nil
		}
	}
	return "", domain.ErrSlugConflict
}

// Apostrophes are dropped rather than hyphenated so "Nisha's Boutique"
// becomes "nishas-boutique".
var apostrophes = strings.NewReplacer("'", "", "’", "")

func slugBase(name string) string {
	base := slug.Make(apostrophes.Replace(strings.TrimSpace(name)))
	if base == "" {
		return slugFallback
	}
	return base
}

// normalizePhone strips spacing and guarantees a leading plus so the
// stored value matches the international-dialing pattern.
func normalizePhone(raw string) string {
	number := strings.ReplaceAll(strings.ReplaceAll(strings.TrimSpace(raw), " ", ""), "-", "")
	if number != "" && !strings.HasPrefix(number, "+") {
		number = "+" + number
	}
	return number
}

func validateProfile(name, number string) *validation.Error {
	vErr := &validation.Error{}
	if len(name) < minNameLength {
		vErr.Add("name", "invalid_name", "business name must be at least 2 characters long")
	}
	if number != "" && !phonePattern.MatchString(number) {
		vErr.Add("whatsapp_number", "invalid_whatsapp_number", "enter a valid WhatsApp number with country code (e.g., +919876543210)")
	}
	return vErr
}
