package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"lakesideBack/internal/models"
	"lakesideBack/internal/moderation"
	"lakesideBack/internal/services"
)

type memoryReviewStore struct {
	nextID  int
	reviews map[int]models.Review
}

func newMemoryReviewStore() *memoryReviewStore {
	return &memoryReviewStore{nextID: 1, reviews: make(map[int]models.Review)}
}

func (m *memoryReviewStore) CreateReview(ctx context.Context, rev models.Review) (models.Review, error) {
	rev.ID = m.nextID
	m.nextID++
	rev.CreatedAt = time.Now().UTC()
	m.reviews[rev.ID] = rev
	return rev, nil
}

func (m *memoryReviewStore) GetReviewByID(ctx context.Context, id int) (models.Review, error) {
	rev, ok := m.reviews[id]
	if !ok {
		return models.Review{}, models.ErrReviewNotFound
	}
	return rev, nil
}

func (m *memoryReviewStore) ListApproved(ctx context.Context, filter models.ReviewFilter) ([]models.Review, error) {
	var out []models.Review
	for _, rev := range m.reviews {
		if rev.Status == moderation.StatusApproved {
			out = append(out, rev)
		}
	}
	return out, nil
}

func (m *memoryReviewStore) ListAll(ctx context.Context) ([]models.Review, error) {
	var out []models.Review
	for _, rev := range m.reviews {
		out = append(out, rev)
	}
	return out, nil
}

func (m *memoryReviewStore) Stats(ctx context.Context) (models.ReviewStats, error) {
	return models.ReviewStats{}, nil
}

func (m *memoryReviewStore) UpdateStatus(ctx context.Context, id int, status string, notes *string) (models.Review, error) {
	rev, ok := m.reviews[id]
	if !ok {
		return models.Review{}, models.ErrReviewNotFound
	}
	rev.Status = status
	if status == moderation.StatusApproved {
		now := time.Now().UTC()
		rev.ApprovedAt = &now
	} else {
		rev.ApprovedAt = nil
	}
	m.reviews[id] = rev
	return rev, nil
}

func (m *memoryReviewStore) SetFeatured(ctx context.Context, id int, featured bool) (models.Review, error) {
	rev, ok := m.reviews[id]
	if !ok {
		return models.Review{}, models.ErrReviewNotFound
	}
	if rev.Status != moderation.StatusApproved {
		return models.Review{}, models.ErrReviewNotApproved
	}
	rev.Featured = featured
	m.reviews[id] = rev
	return rev, nil
}

func (m *memoryReviewStore) SetReply(ctx context.Context, id int, reply string) (models.Review, error) {
	rev, ok := m.reviews[id]
	if !ok {
		return models.Review{}, models.ErrReviewNotFound
	}
	if rev.Status != moderation.StatusApproved {
		return models.Review{}, models.ErrReviewNotApproved
	}
	rev.AdminReply = &reply
	m.reviews[id] = rev
	return rev, nil
}

func (m *memoryReviewStore) SetNotes(ctx context.Context, id int, notes string) (models.Review, error) {
	rev, ok := m.reviews[id]
	if !ok {
		return models.Review{}, models.ErrReviewNotFound
	}
	rev.AdminNotes = &notes
	m.reviews[id] = rev
	return rev, nil
}

func newReviewHandler() (*ReviewHandler, *memoryReviewStore) {
	store := newMemoryReviewStore()
	return &ReviewHandler{Service: &services.ReviewService{Store: store}}, store
}

func seedReview(store *memoryReviewStore, status string) models.Review {
	rev, _ := store.CreateReview(context.Background(), models.Review{
		GuestName:         "Jane Doe",
		GuestEmail:        "jane@example.com",
		AccommodationType: "lakeside-cabin",
		OverallRating:     5,
		ReviewText:        "Lovely stay.",
		Status:            status,
	})
	return rev
}

func TestSubmitReviewCreated(t *testing.T) {
	h, store := newReviewHandler()

	body := `{"guest_name":"Jane Doe","guest_email":"jane@example.com","accommodation_type":"lakeside-cabin","overall_rating":5,"review_text":"Lovely stay."}`
	req := httptest.NewRequest(http.MethodPost, "/reviews", strings.NewReader(body))
	rr := httptest.NewRecorder()

	h.SubmitReview(rr, req)

	if rr.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201, body %s", rr.Code, rr.Body.String())
	}

	var resp struct {
		Success  bool `json:"success"`
		ReviewID int  `json:"review_id"`
	}
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !resp.Success || resp.ReviewID == 0 {
		t.Fatalf("unexpected response: %+v", resp)
	}
	if store.reviews[resp.ReviewID].Status != moderation.StatusPending {
		t.Fatalf("stored status = %s, want pending", store.reviews[resp.ReviewID].Status)
	}
}

func TestSubmitReviewValidationFailure(t *testing.T) {
	h, store := newReviewHandler()

	body := `{"guest_name":"Jane Doe","overall_rating":9}`
	req := httptest.NewRequest(http.MethodPost, "/reviews", strings.NewReader(body))
	rr := httptest.NewRecorder()

	h.SubmitReview(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "overall_rating") {
		t.Fatalf("error must name the bad field, got %s", rr.Body.String())
	}
	if len(store.reviews) != 0 {
		t.Fatal("invalid submission must not persist")
	}
}

func TestSubmitReviewMalformedJSON(t *testing.T) {
	h, _ := newReviewHandler()

	req := httptest.NewRequest(http.MethodPost, "/reviews", strings.NewReader("{not json"))
	rr := httptest.NewRecorder()

	h.SubmitReview(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rr.Code)
	}
}

func TestModerateReviewApprove(t *testing.T) {
	h, store := newReviewHandler()
	rev := seedReview(store, moderation.StatusPending)

	req := httptest.NewRequest(http.MethodPost, "/admin/reviews/1/moderate?:id=1", strings.NewReader(`{"status":"approved"}`))
	rr := httptest.NewRecorder()

	h.ModerateReview(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200, body %s", rr.Code, rr.Body.String())
	}
	if store.reviews[rev.ID].Status != moderation.StatusApproved {
		t.Fatalf("stored status = %s, want approved", store.reviews[rev.ID].Status)
	}
}

func TestModerateReviewInvalidStatus(t *testing.T) {
	h, store := newReviewHandler()
	seedReview(store, moderation.StatusPending)

	req := httptest.NewRequest(http.MethodPost, "/admin/reviews/1/moderate?:id=1", strings.NewReader(`{"status":"archived"}`))
	rr := httptest.NewRecorder()

	h.ModerateReview(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rr.Code)
	}
}

func TestModerateReviewNotFound(t *testing.T) {
	h, _ := newReviewHandler()

	req := httptest.NewRequest(http.MethodPost, "/admin/reviews/42/moderate?:id=42", strings.NewReader(`{"status":"approved"}`))
	rr := httptest.NewRecorder()

	h.ModerateReview(rr, req)

	if rr.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rr.Code)
	}
}

func TestFeaturePendingReviewRejected(t *testing.T) {
	h, store := newReviewHandler()
	seedReview(store, moderation.StatusPending)

	req := httptest.NewRequest(http.MethodPost, "/admin/reviews/1/feature?:id=1", strings.NewReader(`{"featured":true}`))
	rr := httptest.NewRecorder()

	h.FeatureReview(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "not approved") {
		t.Fatalf("unexpected body %s", rr.Body.String())
	}
}

func TestGetPublicReviewsInvalidLimit(t *testing.T) {
	h, _ := newReviewHandler()

	req := httptest.NewRequest(http.MethodGet, "/reviews?limit=abc", nil)
	rr := httptest.NewRecorder()

	h.GetPublicReviews(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rr.Code)
	}
}

func TestGetPublicReviewsOnlyApproved(t *testing.T) {
	h, store := newReviewHandler()
	seedReview(store, moderation.StatusApproved)
	seedReview(store, moderation.StatusPending)
	seedReview(store, moderation.StatusRejected)

	req := httptest.NewRequest(http.MethodGet, "/reviews", nil)
	rr := httptest.NewRecorder()

	h.GetPublicReviews(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rr.Code)
	}

	raw := rr.Body.String()
	var resp struct {
		Success bool                  `json:"success"`
		Reviews []models.PublicReview `json:"reviews"`
	}
	if err := json.Unmarshal([]byte(raw), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp.Reviews) != 1 {
		t.Fatalf("expected 1 public review, got %d", len(resp.Reviews))
	}
	if strings.Contains(raw, "guest_email") {
		t.Fatal("public payload must not expose guest emails")
	}
}
