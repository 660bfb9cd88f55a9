package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	listingModel "reviews-backend/internal/domains/listing/model"
	"reviews-backend/internal/domains/review/model"
	"reviews-backend/internal/infrastructure/hostaway"
	"reviews-backend/internal/shared/utils"
)

// =====================================================
// FAKES
// =====================================================

type fakeReviewRepo struct {
	reviews map[string]*model.Review // keyed by source|externalID
	byID    map[uuid.UUID]*model.Review
	logs    []model.ReviewSelectionLog

	listResult  []*model.ReviewWithListing
	listTotal   int
	listErr     error
	lastFilter  model.ReviewFilter
	upsertErr   error
	approvedSet map[uuid.UUID]bool
}

func newFakeReviewRepo() *fakeReviewRepo {
	return &fakeReviewRepo{
		reviews:     map[string]*model.Review{},
		byID:        map[uuid.UUID]*model.Review{},
		approvedSet: map[uuid.UUID]bool{},
	}
}

func (f *fakeReviewRepo) Upsert(ctx context.Context, review *model.Review) (bool, error) {
	if f.upsertErr != nil {
		return false, f.upsertErr
	}
	key := review.Source + "|" + review.ExternalID
	existing, ok := f.reviews[key]
	if ok {
		// update in place, approved untouched
		approved := existing.Approved
		*existing = *review
		existing.Approved = approved
		return false, nil
	}
	clone := *review
	f.reviews[key] = &clone
	f.byID[clone.ID] = &clone
	return true, nil
}

func (f *fakeReviewRepo) List(ctx context.Context, filter model.ReviewFilter) ([]*model.ReviewWithListing, int, error) {
	f.lastFilter = filter
	return f.listResult, f.listTotal, f.listErr
}

func (f *fakeReviewRepo) ListApprovedByListing(ctx context.Context, listingID uuid.UUID) ([]*model.ReviewWithListing, error) {
	approved := []*model.ReviewWithListing{}
	for _, r := range f.listResult {
		if r.ListingID == listingID && r.Approved {
			approved = append(approved, r)
		}
	}
	return approved, nil
}

func (f *fakeReviewRepo) Approve(ctx context.Context, id uuid.UUID, approved bool, actor *string) error {
	if _, ok := f.byID[id]; !ok {
		return model.ErrReviewNotFound
	}
	f.approvedSet[id] = approved
	action := model.ActionUnapproved
	if approved {
		action = model.ActionApproved
	}
	f.logs = append(f.logs, model.ReviewSelectionLog{ReviewID: id, Action: action, Actor: actor})
	return nil
}

type fakeListingRepo struct {
	listings map[string]*listingModel.Listing // keyed by slug
	byID     map[uuid.UUID]*listingModel.Listing
}

func newFakeListingRepo() *fakeListingRepo {
	return &fakeListingRepo{
		listings: map[string]*listingModel.Listing{},
		byID:     map[uuid.UUID]*listingModel.Listing{},
	}
}

func (f *fakeListingRepo) GetByID(ctx context.Context, id uuid.UUID) (*listingModel.Listing, error) {
	l, ok := f.byID[id]
	if !ok {
		return nil, listingModel.ErrListingNotFound
	}
	return l, nil
}

func (f *fakeListingRepo) GetBySlug(ctx context.Context, slug string) (*listingModel.Listing, error) {
	l, ok := f.listings[slug]
	if !ok {
		return nil, listingModel.ErrListingNotFound
	}
	return l, nil
}

func (f *fakeListingRepo) FindOrCreate(ctx context.Context, name, channel string) (*listingModel.Listing, error) {
	slug := utils.GenerateSlug(name)
	if l, ok := f.listings[slug]; ok {
		return l, nil
	}
	l := &listingModel.Listing{ID: uuid.New(), Name: name, Slug: slug, Channel: &channel}
	f.listings[slug] = l
	f.byID[l.ID] = l
	return l, nil
}

func (f *fakeListingRepo) ListWithStats(ctx context.Context) ([]listingModel.ListingWithStats, error) {
	return nil, nil
}

type fakeFetcher struct {
	reviews []hostaway.RawReview
	err     error
}

func (f *fakeFetcher) FetchReviews(ctx context.Context) ([]hostaway.RawReview, error) {
	return f.reviews, f.err
}

func rawReview(id, listing string) hostaway.RawReview {
	return hostaway.RawReview{
		ID:          id,
		Type:        model.TypeGuestToHost,
		Status:      model.StatusPublished,
		SubmittedAt: "2020-08-21 22:45:14",
		GuestName:   utils.StringPtr("Shane Finkelstein"),
		ListingName: listing,
	}
}

// =====================================================
// SYNC
// =====================================================

func TestSyncReviewsDerivesRatingFromCategories(t *testing.T) {
	raw := rawReview("7453", "2B N1 A - 29 Shoreditch Heights")
	raw.ReviewCategory = []hostaway.RawCategory{
		{Category: "cleanliness", Rating: 10},
		{Category: "communication", Rating: 9},
		{Category: "respect_house_rules", Rating: 8},
	}

	repo := newFakeReviewRepo()
	svc := NewReviewService(repo, newFakeListingRepo(), &fakeFetcher{reviews: []hostaway.RawReview{raw}})

	result, err := svc.SyncReviews(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, result.Synced)
	assert.Equal(t, 1, result.Listings)

	stored := repo.reviews["hostaway|7453"]
	require.NotNil(t, stored)
	require.NotNil(t, stored.RatingOverall)
	assert.Equal(t, 9.0, *stored.RatingOverall)
	assert.False(t, stored.Approved, "ingested reviews start unapproved")
}

func TestSyncReviewsKeepsExplicitRating(t *testing.T) {
	raw := rawReview("9001", "Camden Lock Studio")
	raw.Rating = utils.Float64Ptr(7.8)
	raw.ReviewCategory = []hostaway.RawCategory{{Category: "cleanliness", Rating: 2}}

	repo := newFakeReviewRepo()
	svc := NewReviewService(repo, newFakeListingRepo(), &fakeFetcher{reviews: []hostaway.RawReview{raw}})

	_, err := svc.SyncReviews(context.Background())
	require.NoError(t, err)

	stored := repo.reviews["hostaway|9001"]
	require.NotNil(t, stored.RatingOverall)
	assert.Equal(t, 7.8, *stored.RatingOverall, "explicit rating wins over category mean")
}

func TestSyncReviewsNilRatingWithoutData(t *testing.T) {
	raw := rawReview("9002", "Camden Lock Studio")

	repo := newFakeReviewRepo()
	svc := NewReviewService(repo, newFakeListingRepo(), &fakeFetcher{reviews: []hostaway.RawReview{raw}})

	_, err := svc.SyncReviews(context.Background())
	require.NoError(t, err)

	stored := repo.reviews["hostaway|9002"]
	assert.Nil(t, stored.RatingOverall)
	assert.Nil(t, stored.Categories)
}

func TestSyncReviewsRoundsCategoryMean(t *testing.T) {
	raw := rawReview("9003", "Camden Lock Studio")
	raw.ReviewCategory = []hostaway.RawCategory{
		{Category: "cleanliness", Rating: 10},
		{Category: "communication", Rating: 9},
		{Category: "location", Rating: 3},
	}

	repo := newFakeReviewRepo()
	svc := NewReviewService(repo, newFakeListingRepo(), &fakeFetcher{reviews: []hostaway.RawReview{raw}})

	_, err := svc.SyncReviews(context.Background())
	require.NoError(t, err)

	stored := repo.reviews["hostaway|9003"]
	require.NotNil(t, stored.RatingOverall)
	assert.Equal(t, 7.3, *stored.RatingOverall) // 22/3 rounded to one decimal
}

func TestSyncReviewsReusesListingAcrossReviews(t *testing.T) {
	listings := newFakeListingRepo()
	repo := newFakeReviewRepo()
	svc := NewReviewService(repo, listings, &fakeFetcher{reviews: []hostaway.RawReview{
		rawReview("1", "2B N1 A - 29 Shoreditch Heights"),
		rawReview("2", "2B N1 A - 29 Shoreditch Heights"),
		rawReview("3", "Camden Lock Studio"),
	}})

	result, err := svc.SyncReviews(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, result.Synced)
	assert.Equal(t, 2, result.Listings)
	assert.Len(t, listings.listings, 2)
}

func TestSyncReviewsReingestPreservesApproval(t *testing.T) {
	repo := newFakeReviewRepo()
	listings := newFakeListingRepo()
	fetcher := &fakeFetcher{reviews: []hostaway.RawReview{rawReview("7453", "Camden Lock Studio")}}
	svc := NewReviewService(repo, listings, fetcher)

	_, err := svc.SyncReviews(context.Background())
	require.NoError(t, err)

	// Approval happens out of band between sync runs.
	repo.reviews["hostaway|7453"].Approved = true

	updated := rawReview("7453", "Camden Lock Studio")
	updated.PublicReview = utils.StringPtr("Edited upstream")
	fetcher.reviews = []hostaway.RawReview{updated}

	_, err = svc.SyncReviews(context.Background())
	require.NoError(t, err)

	stored := repo.reviews["hostaway|7453"]
	assert.True(t, stored.Approved, "re-ingest must not reset approval")
	require.NotNil(t, stored.Text)
	assert.Equal(t, "Edited upstream", *stored.Text)
	assert.Len(t, repo.reviews, 1, "same external record must not duplicate")
}

func TestSyncReviewsFetchFailure(t *testing.T) {
	svc := NewReviewService(newFakeReviewRepo(), newFakeListingRepo(), &fakeFetcher{err: errors.New("boom")})

	_, err := svc.SyncReviews(context.Background())
	require.Error(t, err)
	assert.False(t, model.IsValidationError(err), "transport failures stay server faults")
}

func TestSyncReviewsInvalidSourceRecord(t *testing.T) {
	// The fetcher surfaces schema failures as wrapped ozzo errors, the way
	// the source client reports an invalid record.
	schemaErr := fmt.Errorf("invalid review record %q (index 0): %w", "7453", validation.Errors{
		"listingName": errors.New("cannot be blank"),
	})
	svc := NewReviewService(newFakeReviewRepo(), newFakeListingRepo(), &fakeFetcher{err: schemaErr})

	_, err := svc.SyncReviews(context.Background())
	require.Error(t, err)
	assert.True(t, model.IsValidationError(err), "schema failures must map to a bad request")
}

func TestSyncReviewsPartialFailureReportsProgress(t *testing.T) {
	repo := newFakeReviewRepo()
	bad := rawReview("2", "Camden Lock Studio")
	bad.SubmittedAt = "not-a-timestamp"

	svc := NewReviewService(repo, newFakeListingRepo(), &fakeFetcher{reviews: []hostaway.RawReview{
		rawReview("1", "Camden Lock Studio"),
		bad,
	}})

	result, err := svc.SyncReviews(context.Background())
	require.Error(t, err)
	require.NotNil(t, result)
	assert.Equal(t, 1, result.Synced, "first record stays committed")
}

// =====================================================
// APPROVE
// =====================================================

func TestApproveReview(t *testing.T) {
	repo := newFakeReviewRepo()
	id := uuid.New()
	repo.byID[id] = &model.Review{ID: id}

	svc := NewReviewService(repo, newFakeListingRepo(), &fakeFetcher{})

	actor := utils.StringPtr("ops@flexliving")
	resp, err := svc.ApproveReview(context.Background(), model.ApproveReviewRequest{
		ReviewID: id.String(),
		Approved: utils.BoolPtr(true),
	}, actor)

	require.NoError(t, err)
	assert.Equal(t, id, resp.ReviewID)
	assert.True(t, resp.Approved)
	require.Len(t, repo.logs, 1)
	assert.Equal(t, model.ActionApproved, repo.logs[0].Action)
	assert.Equal(t, actor, repo.logs[0].Actor)
}

func TestApproveReviewEveryCallIsLogged(t *testing.T) {
	repo := newFakeReviewRepo()
	id := uuid.New()
	repo.byID[id] = &model.Review{ID: id}

	svc := NewReviewService(repo, newFakeListingRepo(), &fakeFetcher{})
	req := model.ApproveReviewRequest{ReviewID: id.String(), Approved: utils.BoolPtr(true)}

	_, err := svc.ApproveReview(context.Background(), req, nil)
	require.NoError(t, err)
	_, err = svc.ApproveReview(context.Background(), req, nil)
	require.NoError(t, err)

	assert.Len(t, repo.logs, 2, "repeating the same state change still appends an entry")
}

func TestApproveReviewNotFound(t *testing.T) {
	svc := NewReviewService(newFakeReviewRepo(), newFakeListingRepo(), &fakeFetcher{})

	_, err := svc.ApproveReview(context.Background(), model.ApproveReviewRequest{
		ReviewID: uuid.NewString(),
		Approved: utils.BoolPtr(false),
	}, nil)

	assert.ErrorIs(t, err, model.ErrReviewNotFound)
}

func TestApproveReviewValidation(t *testing.T) {
	repo := newFakeReviewRepo()
	svc := NewReviewService(repo, newFakeListingRepo(), &fakeFetcher{})

	_, err := svc.ApproveReview(context.Background(), model.ApproveReviewRequest{ReviewID: "nope"}, nil)
	require.Error(t, err)
	assert.True(t, model.IsValidationError(err))
	assert.Empty(t, repo.logs)
}

// =====================================================
// LIST / PUBLIC
// =====================================================

func TestListReviewsPropagatesValidationError(t *testing.T) {
	svc := NewReviewService(newFakeReviewRepo(), newFakeListingRepo(), &fakeFetcher{})

	_, err := svc.ListReviews(context.Background(), model.ListReviewsRequest{Sort: "evil:asc"})
	require.Error(t, err)
	assert.True(t, model.IsValidationError(err))
}

func TestListReviewsReturnsEmptySlice(t *testing.T) {
	repo := newFakeReviewRepo()
	svc := NewReviewService(repo, newFakeListingRepo(), &fakeFetcher{})

	page, err := svc.ListReviews(context.Background(), model.ListReviewsRequest{})
	require.NoError(t, err)
	require.NotNil(t, page.Items, "empty result must serialize as [], not null")
	assert.Empty(t, page.Items)
	assert.Equal(t, model.DefaultPage, page.Page)
	assert.Equal(t, model.DefaultPageSize, page.PageSize)
}

func TestGetPublicReviewsRejectsMalformedID(t *testing.T) {
	svc := NewReviewService(newFakeReviewRepo(), newFakeListingRepo(), &fakeFetcher{})

	_, err := svc.GetPublicReviews(context.Background(), "not-a-uuid")
	require.Error(t, err)
	assert.True(t, model.IsValidationError(err))
}

func TestGetPublicReviewsUnknownListing(t *testing.T) {
	svc := NewReviewService(newFakeReviewRepo(), newFakeListingRepo(), &fakeFetcher{})

	_, err := svc.GetPublicReviews(context.Background(), uuid.NewString())
	assert.ErrorIs(t, err, listingModel.ErrListingNotFound)
}

func TestGetPublicReviewsOnlyApproved(t *testing.T) {
	listings := newFakeListingRepo()
	listing, err := listings.FindOrCreate(context.Background(), "Camden Lock Studio", model.SourceHostaway)
	require.NoError(t, err)

	repo := newFakeReviewRepo()
	repo.listResult = []*model.ReviewWithListing{
		{Review: model.Review{ID: uuid.New(), ListingID: listing.ID, Approved: true}, ListingName: listing.Name, ListingSlug: listing.Slug},
		{Review: model.Review{ID: uuid.New(), ListingID: listing.ID, Approved: false}, ListingName: listing.Name, ListingSlug: listing.Slug},
	}

	svc := NewReviewService(repo, listings, &fakeFetcher{})

	resp, err := svc.GetPublicReviews(context.Background(), listing.ID.String())
	require.NoError(t, err)
	assert.Equal(t, listing.Slug, resp.Listing.Slug)
	require.Len(t, resp.Items, 1)
	assert.True(t, resp.Items[0].Approved)
}

// =====================================================
// EXPORT
// =====================================================

func TestExportReviewsCapsPageSize(t *testing.T) {
	repo := newFakeReviewRepo()
	svc := NewReviewService(repo, newFakeListingRepo(), &fakeFetcher{})

	file, err := svc.ExportReviews(context.Background(), model.ListReviewsRequest{PageSize: 5})
	require.NoError(t, err)
	require.NotNil(t, file)

	assert.Equal(t, 1, repo.lastFilter.Page)
	assert.Equal(t, model.MaxExportRows, repo.lastFilter.PageSize)
}

func TestExportReviewsWorkbookContents(t *testing.T) {
	listingID := uuid.New()
	repo := newFakeReviewRepo()
	repo.listResult = []*model.ReviewWithListing{
		{
			Review: model.Review{
				ID:            uuid.New(),
				ListingID:     listingID,
				Type:          model.TypeGuestToHost,
				Status:        model.StatusPublished,
				RatingOverall: utils.Float64Ptr(9.5),
				Categories:    map[string]float64{"cleanliness": 10, "communication": 9},
				AuthorName:    utils.StringPtr("Shane Finkelstein"),
			},
			ListingName: "2B N1 A - 29 Shoreditch Heights",
		},
	}
	repo.listTotal = 1

	svc := NewReviewService(repo, newFakeListingRepo(), &fakeFetcher{})

	file, err := svc.ExportReviews(context.Background(), model.ListReviewsRequest{})
	require.NoError(t, err)

	header, err := file.GetCellValue("Reviews", "A1")
	require.NoError(t, err)
	assert.Equal(t, "Listing", header)

	listing, err := file.GetCellValue("Reviews", "A2")
	require.NoError(t, err)
	assert.Equal(t, "2B N1 A - 29 Shoreditch Heights", listing)

	categories, err := file.GetCellValue("Reviews", "F2")
	require.NoError(t, err)
	assert.Equal(t, "cleanliness=10, communication=9", categories)
}
