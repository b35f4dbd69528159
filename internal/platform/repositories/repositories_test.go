package repositories

import (
	"database/sql"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/brunolandim/back-jurix/internal/platform/database"
	"github.com/brunolandim/back-jurix/internal/platform/models"
)

func setupTestDB(t *testing.T) *sql.DB {
	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("Failed to open db: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		t.Fatalf("Failed to migrate: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func seedOrganization(t *testing.T, db *sql.DB, id string) {
	now := time.Now().Unix()
	repo := NewOrganizationRepository(db)
	err := repo.Create(&models.Organization{
		ID:        id,
		Name:      "Escritório Teste",
		Document:  "12.345.678/0001-00",
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		t.Fatalf("Failed to seed organization: %v", err)
	}
}

func seedLawyer(t *testing.T, db *sql.DB, id, orgID, email string) {
	now := time.Now().Unix()
	repo := NewLawyerRepository(db)
	err := repo.Create(&models.Lawyer{
		ID:             id,
		OrganizationID: orgID,
		Name:           "Dr. Teste",
		Email:          email,
		PasswordHash:   "hash",
		OAB:            "SP" + id,
		Role:           models.RoleLawyer,
		Active:         true,
		CreatedAt:      now,
		UpdatedAt:      now,
	})
	if err != nil {
		t.Fatalf("Failed to seed lawyer: %v", err)
	}
}

func seedColumn(t *testing.T, db *sql.DB, id, orgID string) {
	repo := NewColumnRepository(db)
	err := repo.Create(&models.Column{
		ID:             id,
		OrganizationID: orgID,
		Title:          "Novo",
		IsDefault:      true,
		CreatedAt:      time.Now().Unix(),
	})
	if err != nil {
		t.Fatalf("Failed to seed column: %v", err)
	}
}

func seedCase(t *testing.T, db *sql.DB, id, orgID, columnID string) {
	now := time.Now().Unix()
	repo := NewCaseRepository(db)
	err := repo.Create(&models.LegalCase{
		ID:             id,
		OrganizationID: orgID,
		ColumnID:       columnID,
		Number:         "0001234-56.2024",
		Title:          "Processo Teste",
		Client:         "Cliente Teste",
		Priority:       "medium",
		Active:         true,
		CreatedBy:      "law-1",
		CreatedAt:      now,
		UpdatedAt:      now,
	})
	if err != nil {
		t.Fatalf("Failed to seed case: %v", err)
	}
}

func seedTenant(t *testing.T, db *sql.DB) {
	seedOrganization(t, db, "org-1")
	seedLawyer(t, db, "law-1", "org-1", "ana@adv.com")
	seedColumn(t, db, "col-1", "org-1")
	seedCase(t, db, "case-1", "org-1", "col-1")
}

func TestOrganizationRepository_UpdateKeepsDocument(t *testing.T) {
	db := setupTestDB(t)
	seedOrganization(t, db, "org-1")

	repo := NewOrganizationRepository(db)
	org, err := repo.FindByID("org-1")
	if err != nil {
		t.Fatalf("Failed to find organization: %v", err)
	}

	email := "contato@escritorio.com"
	org.Name = "Novo Nome"
	org.Email = &email
	if err := repo.Update(org); err != nil {
		t.Fatalf("Failed to update: %v", err)
	}

	updated, _ := repo.FindByID("org-1")
	if updated.Name != "Novo Nome" {
		t.Errorf("Expected name Novo Nome, got %s", updated.Name)
	}
	if updated.Email == nil || *updated.Email != email {
		t.Errorf("Expected email %s, got %v", email, updated.Email)
	}
	if updated.Document != "12.345.678/0001-00" {
		t.Errorf("Expected document unchanged, got %s", updated.Document)
	}
}

func TestOrganizationRepository_UpdateStripeCustomerID(t *testing.T) {
	db := setupTestDB(t)
	seedOrganization(t, db, "org-1")

	repo := NewOrganizationRepository(db)
	if err := repo.UpdateStripeCustomerID("org-1", "cus_123"); err != nil {
		t.Fatalf("Failed to set customer id: %v", err)
	}

	org, _ := repo.FindByID("org-1")
	if org.StripeCustomerID == nil || *org.StripeCustomerID != "cus_123" {
		t.Errorf("Expected cus_123, got %v", org.StripeCustomerID)
	}
}

func TestOrganizationRepository_NotFound(t *testing.T) {
	db := setupTestDB(t)

	repo := NewOrganizationRepository(db)
	org, err := repo.FindByID("missing")
	if err != nil {
		t.Errorf("Expected nil error, got %v", err)
	}
	if org != nil {
		t.Errorf("Expected nil organization, got %v", org)
	}
}

func TestLawyerRepository_ResetCode(t *testing.T) {
	db := setupTestDB(t)
	seedOrganization(t, db, "org-1")
	seedLawyer(t, db, "law-1", "org-1", "ana@adv.com")

	repo := NewLawyerRepository(db)
	now := time.Now().Unix()
	code := "123456"
	expires := now + 3600
	if err := repo.SetResetCode("law-1", &code, &expires); err != nil {
		t.Fatalf("Failed to set reset code: %v", err)
	}

	found, err := repo.FindByEmailAndResetCode("ana@adv.com", "123456", now)
	if err != nil {
		t.Fatalf("Failed to find: %v", err)
	}
	if found == nil || found.ID != "law-1" {
		t.Errorf("Expected law-1, got %v", found)
	}

	// Wrong code
	found, _ = repo.FindByEmailAndResetCode("ana@adv.com", "654321", now)
	if found != nil {
		t.Errorf("Expected nil for wrong code, got %v", found)
	}

	// Expired
	found, _ = repo.FindByEmailAndResetCode("ana@adv.com", "123456", expires+1)
	if found != nil {
		t.Errorf("Expected nil for expired code, got %v", found)
	}

	// Cleared
	if err := repo.SetResetCode("law-1", nil, nil); err != nil {
		t.Fatalf("Failed to clear reset code: %v", err)
	}
	found, _ = repo.FindByEmailAndResetCode("ana@adv.com", "123456", now)
	if found != nil {
		t.Errorf("Expected nil after clearing, got %v", found)
	}
}

func TestLawyerRepository_DeleteDeactivates(t *testing.T) {
	db := setupTestDB(t)
	seedOrganization(t, db, "org-1")
	seedLawyer(t, db, "law-1", "org-1", "ana@adv.com")
	seedLawyer(t, db, "law-2", "org-1", "bruno@adv.com")

	repo := NewLawyerRepository(db)
	if err := repo.Delete("law-2"); err != nil {
		t.Fatalf("Failed to delete: %v", err)
	}

	// Row survives for history
	lawyer, _ := repo.FindByID("law-2")
	if lawyer == nil || lawyer.Active {
		t.Errorf("Expected inactive lawyer, got %v", lawyer)
	}

	active, err := repo.FindByOrganization("org-1", true)
	if err != nil {
		t.Fatalf("Failed to list: %v", err)
	}
	if len(active) != 1 {
		t.Errorf("Expected 1 active lawyer, got %d", len(active))
	}

	all, _ := repo.FindByOrganization("org-1", false)
	if len(all) != 2 {
		t.Errorf("Expected 2 lawyers total, got %d", len(all))
	}

	count, _ := repo.CountByOrganization("org-1")
	if count != 1 {
		t.Errorf("Expected count 1, got %d", count)
	}
}

func TestColumnRepository_MaxOrderAndHasCases(t *testing.T) {
	db := setupTestDB(t)
	seedTenant(t, db)

	repo := NewColumnRepository(db)

	max, err := repo.GetMaxOrder("org-1")
	if err != nil {
		t.Fatalf("Failed to get max order: %v", err)
	}
	if max != 0 {
		t.Errorf("Expected max order 0, got %d", max)
	}

	max, _ = repo.GetMaxOrder("org-empty")
	if max != -1 {
		t.Errorf("Expected -1 for empty org, got %d", max)
	}

	busy, err := repo.HasCases("col-1")
	if err != nil {
		t.Fatalf("Failed to check cases: %v", err)
	}
	if !busy {
		t.Error("Expected col-1 to have cases")
	}

	seedColumn(t, db, "col-2", "org-1")
	empty, _ := repo.HasCases("col-2")
	if empty {
		t.Error("Expected col-2 to be empty")
	}
}

func TestCaseRepository_ActiveFilterAndCount(t *testing.T) {
	db := setupTestDB(t)
	seedTenant(t, db)
	seedCase(t, db, "case-2", "org-1", "col-1")

	repo := NewCaseRepository(db)

	archived, _ := repo.FindByID("case-2")
	archived.Active = false
	if err := repo.Update(archived); err != nil {
		t.Fatalf("Failed to archive: %v", err)
	}

	active, err := repo.FindByOrganization("org-1", true)
	if err != nil {
		t.Fatalf("Failed to list: %v", err)
	}
	if len(active) != 1 {
		t.Errorf("Expected 1 active case, got %d", len(active))
	}

	all, _ := repo.FindByOrganization("org-1", false)
	if len(all) != 2 {
		t.Errorf("Expected 2 cases, got %d", len(all))
	}

	count, _ := repo.CountByOrganization("org-1")
	if count != 1 {
		t.Errorf("Expected count 1, got %d", count)
	}

	byColumn, _ := repo.FindByColumn("col-1")
	if len(byColumn) != 1 {
		t.Errorf("Expected 1 active case in column, got %d", len(byColumn))
	}
}

func TestCaseRepository_Assignment(t *testing.T) {
	db := setupTestDB(t)
	seedTenant(t, db)

	repo := NewCaseRepository(db)
	c, _ := repo.FindByID("case-1")

	lawyerID := "law-1"
	c.AssignedTo = &lawyerID
	if err := repo.Update(c); err != nil {
		t.Fatalf("Failed to assign: %v", err)
	}

	assigned, _ := repo.FindByID("case-1")
	if assigned.AssignedTo == nil || *assigned.AssignedTo != "law-1" {
		t.Errorf("Expected assignment to law-1, got %v", assigned.AssignedTo)
	}

	assigned.AssignedTo = nil
	repo.Update(assigned)
	cleared, _ := repo.FindByID("case-1")
	if cleared.AssignedTo != nil {
		t.Errorf("Expected cleared assignment, got %v", cleared.AssignedTo)
	}
}

func TestDocumentRepository_CountByOrganization(t *testing.T) {
	db := setupTestDB(t)
	seedTenant(t, db)

	repo := NewDocumentRepository(db)
	now := time.Now().Unix()
	for _, id := range []string{"doc-1", "doc-2"} {
		err := repo.Create(&models.DocumentRequest{
			ID:          id,
			CaseID:      "case-1",
			Name:        "RG",
			Status:      models.DocumentPending,
			RequestedAt: now,
		})
		if err != nil {
			t.Fatalf("Failed to create document: %v", err)
		}
	}

	count, err := repo.CountByOrganization("org-1")
	if err != nil {
		t.Fatalf("Failed to count: %v", err)
	}
	if count != 2 {
		t.Errorf("Expected 2 documents, got %d", count)
	}

	count, _ = repo.CountByOrganization("org-other")
	if count != 0 {
		t.Errorf("Expected 0 for other org, got %d", count)
	}
}

func TestShareLinkRepository_CreateAndFindByToken(t *testing.T) {
	db := setupTestDB(t)
	seedTenant(t, db)

	docs := NewDocumentRepository(db)
	now := time.Now().Unix()
	docs.Create(&models.DocumentRequest{ID: "doc-1", CaseID: "case-1", Name: "RG", Status: models.DocumentPending, RequestedAt: now})
	docs.Create(&models.DocumentRequest{ID: "doc-2", CaseID: "case-1", Name: "CPF", Status: models.DocumentPending, RequestedAt: now})

	repo := NewShareLinkRepository(db)
	link := &models.ShareableLink{
		ID:        "link-1",
		Token:     "tok-1",
		CaseID:    "case-1",
		CreatedBy: "law-1",
		CreatedAt: now,
	}
	if err := repo.Create(link, []string{"doc-1", "doc-2"}); err != nil {
		t.Fatalf("Failed to create link: %v", err)
	}

	found, err := repo.FindByToken("tok-1")
	if err != nil {
		t.Fatalf("Failed to find by token: %v", err)
	}
	if found == nil {
		t.Fatal("Expected link, got nil")
	}
	if found.CaseTitle != "Processo Teste" {
		t.Errorf("Expected case title, got %s", found.CaseTitle)
	}
	if found.LawyerName != "Dr. Teste" {
		t.Errorf("Expected lawyer name, got %s", found.LawyerName)
	}
	if len(found.Documents) != 2 {
		t.Errorf("Expected 2 documents, got %d", len(found.Documents))
	}

	ids, _ := repo.FindDocumentIDs("link-1")
	if len(ids) != 2 {
		t.Errorf("Expected 2 document ids, got %d", len(ids))
	}

	missing, err := repo.FindByToken("tok-unknown")
	if err != nil {
		t.Errorf("Expected nil error, got %v", err)
	}
	if missing != nil {
		t.Errorf("Expected nil for unknown token, got %v", missing)
	}
}

func TestShareLinkRepository_ActiveAndExpire(t *testing.T) {
	db := setupTestDB(t)
	seedTenant(t, db)

	repo := NewShareLinkRepository(db)
	now := time.Now().Unix()
	repo.Create(&models.ShareableLink{ID: "link-1", Token: "tok-1", CaseID: "case-1", CreatedBy: "law-1", CreatedAt: now}, nil)

	active, _ := repo.FindActiveByCase("case-1")
	if active == nil || active.ID != "link-1" {
		t.Fatalf("Expected active link-1, got %v", active)
	}

	count, _ := repo.CountByOrganization("org-1")
	if count != 1 {
		t.Errorf("Expected count 1, got %d", count)
	}

	if err := repo.Expire("link-1"); err != nil {
		t.Fatalf("Failed to expire: %v", err)
	}

	active, _ = repo.FindActiveByCase("case-1")
	if active != nil {
		t.Errorf("Expected no active link, got %v", active)
	}

	// Expired links drop out of the quota
	count, _ = repo.CountByOrganization("org-1")
	if count != 0 {
		t.Errorf("Expected count 0 after expiry, got %d", count)
	}

	all, _ := repo.FindByCase("case-1")
	if len(all) != 1 {
		t.Errorf("Expected 1 link in history, got %d", len(all))
	}
}

func TestNotificationRepository_FindPendingToSend(t *testing.T) {
	db := setupTestDB(t)
	seedTenant(t, db)

	repo := NewNotificationRepository(db)
	now := time.Now().Unix()
	lawyerID := "law-1"

	// Due, assigned
	repo.Create(&models.CaseNotification{ID: "n-1", CaseID: "case-1", LawyerID: &lawyerID, Type: models.NotificationHearing, Date: now - 60, CreatedAt: now})
	// Due, unassigned
	repo.Create(&models.CaseNotification{ID: "n-2", CaseID: "case-1", Type: models.NotificationTask, Date: now - 120, CreatedAt: now})
	// Future
	repo.Create(&models.CaseNotification{ID: "n-3", CaseID: "case-1", LawyerID: &lawyerID, Type: models.NotificationDeadline, Date: now + 3600, CreatedAt: now})
	// Stale, before lookback
	repo.Create(&models.CaseNotification{ID: "n-4", CaseID: "case-1", LawyerID: &lawyerID, Type: models.NotificationTask, Date: now - 100000, CreatedAt: now})

	pending, err := repo.FindPendingToSend(now, now-3600)
	if err != nil {
		t.Fatalf("Failed to find pending: %v", err)
	}
	if len(pending) != 2 {
		t.Fatalf("Expected 2 pending, got %d", len(pending))
	}

	byID := map[string]bool{}
	for _, p := range pending {
		byID[p.ID] = true
		if p.CaseTitle != "Processo Teste" {
			t.Errorf("Expected case title, got %s", p.CaseTitle)
		}
	}
	if !byID["n-1"] || !byID["n-2"] {
		t.Errorf("Expected n-1 and n-2, got %v", byID)
	}

	for _, p := range pending {
		if p.ID == "n-1" && (p.Lawyer == nil || p.Lawyer.Email != "ana@adv.com") {
			t.Errorf("Expected lawyer joined on n-1, got %v", p.Lawyer)
		}
		if p.ID == "n-2" && p.Lawyer != nil {
			t.Errorf("Expected no lawyer on n-2, got %v", p.Lawyer)
		}
	}

	// Sent notifications leave the window
	if err := repo.MarkAsSent("n-1", now); err != nil {
		t.Fatalf("Failed to mark sent: %v", err)
	}
	pending, _ = repo.FindPendingToSend(now, now-3600)
	if len(pending) != 1 {
		t.Errorf("Expected 1 pending after send, got %d", len(pending))
	}
}

func TestNotificationRepository_ReadState(t *testing.T) {
	db := setupTestDB(t)
	seedTenant(t, db)

	repo := NewNotificationRepository(db)
	now := time.Now().Unix()
	lawyerID := "law-1"
	repo.Create(&models.CaseNotification{ID: "n-1", CaseID: "case-1", LawyerID: &lawyerID, Type: models.NotificationTask, Date: now, CreatedAt: now})
	repo.Create(&models.CaseNotification{ID: "n-2", CaseID: "case-1", LawyerID: &lawyerID, Type: models.NotificationTask, Date: now, CreatedAt: now})

	if err := repo.MarkAsRead("n-1", now); err != nil {
		t.Fatalf("Failed to mark read: %v", err)
	}
	n, _ := repo.FindByID("n-1")
	if !n.IsRead || n.ReadAt == nil {
		t.Errorf("Expected read notification, got %+v", n)
	}

	// Only the remaining unread one counts
	updated, err := repo.MarkAllAsRead("law-1", now)
	if err != nil {
		t.Fatalf("Failed to mark all read: %v", err)
	}
	if updated != 1 {
		t.Errorf("Expected 1 updated, got %d", updated)
	}

	list, _ := repo.FindByLawyer("law-1")
	if len(list) != 2 {
		t.Fatalf("Expected 2 notifications, got %d", len(list))
	}
	for _, n := range list {
		if !n.IsRead {
			t.Errorf("Expected all read, %s is not", n.ID)
		}
	}
}

func TestNotificationRepository_ReassignPending(t *testing.T) {
	db := setupTestDB(t)
	seedTenant(t, db)
	seedLawyer(t, db, "law-2", "org-1", "bruno@adv.com")

	repo := NewNotificationRepository(db)
	now := time.Now().Unix()
	oldLawyer := "law-1"
	repo.Create(&models.CaseNotification{ID: "n-unsent", CaseID: "case-1", LawyerID: &oldLawyer, Type: models.NotificationTask, Date: now, CreatedAt: now})
	repo.Create(&models.CaseNotification{ID: "n-sent", CaseID: "case-1", LawyerID: &oldLawyer, Type: models.NotificationTask, Date: now, IsSent: true, CreatedAt: now})

	newLawyer := "law-2"
	if err := repo.ReassignPending("case-1", &newLawyer); err != nil {
		t.Fatalf("Failed to reassign: %v", err)
	}

	unsent, _ := repo.FindByID("n-unsent")
	if unsent.LawyerID == nil || *unsent.LawyerID != "law-2" {
		t.Errorf("Expected reassignment to law-2, got %v", unsent.LawyerID)
	}

	sent, _ := repo.FindByID("n-sent")
	if sent.LawyerID == nil || *sent.LawyerID != "law-1" {
		t.Errorf("Expected sent notification to keep law-1, got %v", sent.LawyerID)
	}

	// Unassign
	if err := repo.ReassignPending("case-1", nil); err != nil {
		t.Fatalf("Failed to unassign: %v", err)
	}
	unsent, _ = repo.FindByID("n-unsent")
	if unsent.LawyerID != nil {
		t.Errorf("Expected unassigned notification, got %v", unsent.LawyerID)
	}
}

func TestSubscriptionRepository_RoundTrip(t *testing.T) {
	db := setupTestDB(t)
	seedOrganization(t, db, "org-1")

	repo := NewSubscriptionRepository(db)
	now := time.Now().Unix()
	trialEnd := now + 14*24*3600
	sub := &models.Subscription{
		ID:                   "sub-1",
		OrganizationID:       "org-1",
		StripeSubscriptionID: "sub_ext",
		StripePriceID:        "price_pro",
		Plan:                 "pro",
		Status:               models.StatusTrialing,
		CurrentPeriodStart:   now,
		CurrentPeriodEnd:     now + 30*24*3600,
		TrialEnd:             &trialEnd,
		CreatedAt:            now,
		UpdatedAt:            now,
	}
	if err := repo.Create(sub); err != nil {
		t.Fatalf("Failed to create: %v", err)
	}

	byOrg, err := repo.FindByOrganization("org-1")
	if err != nil {
		t.Fatalf("Failed to find by org: %v", err)
	}
	if byOrg == nil || byOrg.StripeSubscriptionID != "sub_ext" {
		t.Fatalf("Expected sub_ext, got %v", byOrg)
	}
	if byOrg.TrialEnd == nil || *byOrg.TrialEnd != trialEnd {
		t.Errorf("Expected trial end %d, got %v", trialEnd, byOrg.TrialEnd)
	}

	byStripe, _ := repo.FindByStripeSubscriptionID("sub_ext")
	if byStripe == nil || byStripe.ID != "sub-1" {
		t.Errorf("Expected sub-1, got %v", byStripe)
	}

	canceledAt := now + 100
	sub.Status = models.StatusCanceled
	sub.TrialEnd = nil
	sub.CanceledAt = &canceledAt
	if err := repo.Update(sub); err != nil {
		t.Fatalf("Failed to update: %v", err)
	}

	updated, _ := repo.FindByOrganization("org-1")
	if updated.Status != models.StatusCanceled {
		t.Errorf("Expected canceled, got %s", updated.Status)
	}
	if updated.TrialEnd != nil {
		t.Errorf("Expected trial end cleared, got %v", updated.TrialEnd)
	}
	if updated.CanceledAt == nil || *updated.CanceledAt != canceledAt {
		t.Errorf("Expected canceled at %d, got %v", canceledAt, updated.CanceledAt)
	}

	missing, err := repo.FindByOrganization("org-other")
	if err != nil {
		t.Errorf("Expected nil error, got %v", err)
	}
	if missing != nil {
		t.Errorf("Expected nil, got %v", missing)
	}
}

func TestSubscriptionRepository_OnePerOrganization(t *testing.T) {
	db := setupTestDB(t)
	seedOrganization(t, db, "org-1")

	repo := NewSubscriptionRepository(db)
	now := time.Now().Unix()
	first := &models.Subscription{
		ID: "sub-1", OrganizationID: "org-1", StripeSubscriptionID: "sub_a",
		StripePriceID: "price_pro", Plan: "pro", Status: models.StatusActive,
		CurrentPeriodStart: now, CurrentPeriodEnd: now + 30*24*3600,
		CreatedAt: now, UpdatedAt: now,
	}
	if err := repo.Create(first); err != nil {
		t.Fatalf("Failed to create: %v", err)
	}

	second := &models.Subscription{
		ID: "sub-2", OrganizationID: "org-1", StripeSubscriptionID: "sub_b",
		StripePriceID: "price_pro", Plan: "pro", Status: models.StatusActive,
		CurrentPeriodStart: now, CurrentPeriodEnd: now + 30*24*3600,
		CreatedAt: now, UpdatedAt: now,
	}
	if err := repo.Create(second); err == nil {
		t.Fatal("Expected unique constraint error for second subscription on the same organization")
	}

	// Repointing the existing row at a new external subscription is allowed.
	first.StripeSubscriptionID = "sub_b"
	if err := repo.Update(first); err != nil {
		t.Fatalf("Failed to update: %v", err)
	}
	got, _ := repo.FindByOrganization("org-1")
	if got == nil || got.ID != "sub-1" || got.StripeSubscriptionID != "sub_b" {
		t.Errorf("Expected sub-1 repointed at sub_b, got %+v", got)
	}
}

func TestCleanupRepository_Sweep(t *testing.T) {
	db := setupTestDB(t)
	seedTenant(t, db)

	now := time.Now().Unix()
	old := now - 100*24*3600
	lawyerID := "law-1"

	notifications := NewNotificationRepository(db)
	sentAt := old
	// Old, read and sent: eligible
	notifications.Create(&models.CaseNotification{ID: "n-old", CaseID: "case-1", LawyerID: &lawyerID, Type: models.NotificationTask, Date: old, IsRead: true, ReadAt: &sentAt, IsSent: true, SentAt: &sentAt, CreatedAt: old})
	// Old but unread: kept
	notifications.Create(&models.CaseNotification{ID: "n-unread", CaseID: "case-1", LawyerID: &lawyerID, Type: models.NotificationTask, Date: old, IsSent: true, SentAt: &sentAt, CreatedAt: old})
	// Recent, read and sent: kept
	notifications.Create(&models.CaseNotification{ID: "n-recent", CaseID: "case-1", LawyerID: &lawyerID, Type: models.NotificationTask, Date: now, IsRead: true, ReadAt: &now, IsSent: true, SentAt: &now, CreatedAt: now})
	// Created long ago but scheduled recently: retention goes by date, kept
	recentDate := now - 30*24*3600
	notifications.Create(&models.CaseNotification{ID: "n-early-created", CaseID: "case-1", LawyerID: &lawyerID, Type: models.NotificationHearing, Date: recentDate, IsRead: true, ReadAt: &recentDate, IsSent: true, SentAt: &recentDate, CreatedAt: old})

	docs := NewDocumentRepository(db)
	docs.Create(&models.DocumentRequest{ID: "doc-1", CaseID: "case-1", Name: "RG", Status: models.DocumentPending, RequestedAt: old})

	links := NewShareLinkRepository(db)
	links.Create(&models.ShareableLink{ID: "link-old", Token: "tok-old", CaseID: "case-1", IsExpired: true, CreatedBy: "law-1", CreatedAt: old}, []string{"doc-1"})
	links.Create(&models.ShareableLink{ID: "link-active", Token: "tok-active", CaseID: "case-1", CreatedBy: "law-1", CreatedAt: old}, nil)

	cleanup := NewCleanupRepository(db)
	cutoff := now - 90*24*3600
	result, err := cleanup.Sweep(cutoff)
	if err != nil {
		t.Fatalf("Failed to sweep: %v", err)
	}

	if result.Notifications != 1 {
		t.Errorf("Expected 1 notification removed, got %d", result.Notifications)
	}
	if result.ShareLinks != 1 {
		t.Errorf("Expected 1 link removed, got %d", result.ShareLinks)
	}

	if n, _ := notifications.FindByID("n-old"); n != nil {
		t.Errorf("Expected n-old removed, got %v", n)
	}
	if n, _ := notifications.FindByID("n-unread"); n == nil {
		t.Error("Expected n-unread kept")
	}
	if n, _ := notifications.FindByID("n-recent"); n == nil {
		t.Error("Expected n-recent kept")
	}
	if n, _ := notifications.FindByID("n-early-created"); n == nil {
		t.Error("Expected n-early-created kept")
	}

	// Active links survive even when old
	if l, _ := links.FindActiveByCase("case-1"); l == nil || l.ID != "link-active" {
		t.Errorf("Expected link-active kept, got %v", l)
	}
	if ids, _ := links.FindDocumentIDs("link-old"); len(ids) != 0 {
		t.Errorf("Expected link documents removed, got %v", ids)
	}
}
