package repository

import (
	"context"
	"log/slog"

	"eventgo-ticketing/internal/domain/split"
	"eventgo-ticketing/internal/infra"
	"eventgo-ticketing/internal/infra/db"
	"eventgo-ticketing/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

const (
	insertSplitSQL = `
INSERT INTO split_payments (id, event_id, reservation_id, currency, description, total_amount, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)`

	insertSplitLinkSQL = `
INSERT INTO split_payment_links
	(payment_link_id, split_payment_id, position, participant_email, user_id, ticket_id, amount, url, status, expires_at, paid_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	selectSplitSQL = `
SELECT id, event_id, reservation_id, currency, description, total_amount, created_at
FROM split_payments WHERE id = $1`

	selectSplitLinksSQL = `
SELECT payment_link_id, url, participant_email, user_id, ticket_id, amount, status, expires_at, paid_at
FROM split_payment_links WHERE split_payment_id = $1 ORDER BY position`

	updateSplitLinkSQL = `
UPDATE split_payment_links SET status = $2, paid_at = $3 WHERE payment_link_id = $1`
)

type SplitPaymentRepository struct {
	logger *slog.Logger
}

func NewSplitPaymentRepository(logger *slog.Logger) *SplitPaymentRepository {
	return &SplitPaymentRepository{logger: logger}
}

func (r *SplitPaymentRepository) Create(ctx context.Context, tx db.DBTX, sp *split.SplitPayment) error {
	_, err := tx.Exec(ctx, insertSplitSQL,
		sp.ID, sp.EventID, sp.ReservationID, sp.Currency, sp.Description, sp.TotalAmount, sp.CreatedAt)
	if err != nil {
		return infra.ClassifyDBErr(r.logger, "failed to create split payment", err)
	}

	for i, l := range sp.Links {
		_, err := tx.Exec(ctx, insertSplitLinkSQL,
			l.PaymentLinkID, sp.ID, i, l.ParticipantEmail, l.UserID, l.TicketID,
			l.Amount, l.URL, string(l.Status), l.ExpiresAt, pgconv.TimePtrToPgtype(l.PaidAt))
		if err != nil {
			return infra.ClassifyDBErr(r.logger, "failed to create split payment link", err)
		}
	}
	return nil
}

func (r *SplitPaymentRepository) FindByID(ctx context.Context, q db.DBTX, id uuid.UUID) (*split.SplitPayment, error) {
	return r.find(ctx, q, id, false)
}

// FindByIDForUpdate row-locks the links so concurrent status refreshes serialize.
func (r *SplitPaymentRepository) FindByIDForUpdate(ctx context.Context, tx db.DBTX, id uuid.UUID) (*split.SplitPayment, error) {
	return r.find(ctx, tx, id, true)
}

func (r *SplitPaymentRepository) find(ctx context.Context, q db.DBTX, id uuid.UUID, forUpdate bool) (*split.SplitPayment, error) {
	sp := &split.SplitPayment{}
	err := q.QueryRow(ctx, selectSplitSQL, id).Scan(
		&sp.ID, &sp.EventID, &sp.ReservationID, &sp.Currency, &sp.Description, &sp.TotalAmount, &sp.CreatedAt)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr(r.logger, infra.KindNotFound, "split payment not found", err)
		}
		return nil, infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to find split payment", err)
	}

	linksSQL := selectSplitLinksSQL
	if forUpdate {
		linksSQL += " FOR UPDATE"
	}
	rows, err := q.Query(ctx, linksSQL, id)
	if err != nil {
		return nil, infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to query split payment links", err)
	}
	links, err := pgx.CollectRows(rows, scanSplitLink)
	if err != nil {
		return nil, infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to scan split payment links", err)
	}
	sp.Links = links
	return sp, nil
}

func (r *SplitPaymentRepository) UpdateLinks(ctx context.Context, tx db.DBTX, links []split.Link) error {
	for _, l := range links {
		if _, err := tx.Exec(ctx, updateSplitLinkSQL, l.PaymentLinkID, string(l.Status), pgconv.TimePtrToPgtype(l.PaidAt)); err != nil {
			return infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to update split payment link", err)
		}
	}
	return nil
}

func scanSplitLink(row pgx.CollectableRow) (split.Link, error) {
	var (
		l      split.Link
		status string
		paidAt pgtype.Timestamptz
	)
	err := row.Scan(&l.PaymentLinkID, &l.URL, &l.ParticipantEmail, &l.UserID, &l.TicketID,
		&l.Amount, &status, &l.ExpiresAt, &paidAt)
	l.Status = split.LinkStatus(status)
	l.PaidAt = pgconv.TimePtrFromPgtype(paidAt)
	return l, err
}
