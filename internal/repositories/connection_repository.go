package repositories

import (
	"context"
	"time"

	"github.com/anonto42/linkedin-clone/backend/internal/models"
	"gorm.io/gorm"
)

// ConnectionRepository defines the interface for connection and connection
// request data operations
type ConnectionRepository interface {
	AreConnected(ctx context.Context, a, b uint) (bool, error)
	ConnectedUserIDs(ctx context.Context, userID uint) ([]uint, error)
	CountConnections(ctx context.Context, userID uint) (int64, error)
	ConnectionsOf(ctx context.Context, userIDs []uint) ([]models.Connection, error)
	GetConnectionByID(ctx context.Context, id uint) (*models.Connection, error)
	GetConnectionBetween(ctx context.Context, a, b uint) (*models.Connection, error)
	ListConnections(ctx context.Context, userID uint, page Page) ([]models.Connection, int64, error)
	DeleteConnection(ctx context.Context, id uint) error

	SendRequest(ctx context.Context, req *models.ConnectionRequest) error
	GetRequestByID(ctx context.Context, id uint) (*models.ConnectionRequest, error)
	GetPendingBetween(ctx context.Context, a, b uint) (*models.ConnectionRequest, error)
	ListPendingRequests(ctx context.Context, userID uint, incoming bool, page Page) ([]models.ConnectionRequest, int64, error)
	PendingPartnerIDs(ctx context.Context, userID uint) ([]uint, error)
	AcceptRequest(ctx context.Context, req *models.ConnectionRequest, at time.Time) (*models.Connection, error)
	SetRequestStatus(ctx context.Context, id uint, status models.ConnectionStatus, at time.Time) error
}

// PostgresConnectionRepository implements ConnectionRepository for PostgreSQL
type PostgresConnectionRepository struct {
	db *gorm.DB
}

// NewPostgresConnectionRepository creates a new PostgresConnectionRepository
func NewPostgresConnectionRepository(db *gorm.DB) *PostgresConnectionRepository {
	return &PostgresConnectionRepository{db: db}
}

func pairOf(a, b uint) (uint, uint) {
	if a > b {
		return b, a
	}
	return a, b
}

// AreConnected checks the undirected connection table for the pair
func (r *PostgresConnectionRepository) AreConnected(ctx context.Context, a, b uint) (bool, error) {
	u1, u2 := pairOf(a, b)
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Connection{}).
		Where("user1_id = ? AND user2_id = ?", u1, u2).
		Count(&count).Error
	return count > 0, err
}

// ConnectedUserIDs returns the ids of everyone connected to userID
func (r *PostgresConnectionRepository) ConnectedUserIDs(ctx context.Context, userID uint) ([]uint, error) {
	var left, right []uint
	db := r.db.WithContext(ctx)
	if err := db.Model(&models.Connection{}).Where("user1_id = ?", userID).Pluck("user2_id", &left).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&models.Connection{}).Where("user2_id = ?", userID).Pluck("user1_id", &right).Error; err != nil {
		return nil, err
	}
	return append(left, right...), nil
}

func (r *PostgresConnectionRepository) CountConnections(ctx context.Context, userID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Connection{}).
		Where("user1_id = ? OR user2_id = ?", userID, userID).
		Count(&count).Error
	return count, err
}

// ConnectionsOf returns every connection touching one of the given users
func (r *PostgresConnectionRepository) ConnectionsOf(ctx context.Context, userIDs []uint) ([]models.Connection, error) {
	var conns []models.Connection
	if len(userIDs) == 0 {
		return conns, nil
	}
	err := r.db.WithContext(ctx).
		Where("user1_id IN ? OR user2_id IN ?", userIDs, userIDs).
		Find(&conns).Error
	return conns, err
}

func (r *PostgresConnectionRepository) GetConnectionByID(ctx context.Context, id uint) (*models.Connection, error) {
	var conn models.Connection
	if err := r.db.WithContext(ctx).First(&conn, id).Error; err != nil {
		return nil, translate(err)
	}
	return &conn, nil
}

func (r *PostgresConnectionRepository) GetConnectionBetween(ctx context.Context, a, b uint) (*models.Connection, error) {
	u1, u2 := pairOf(a, b)
	var conn models.Connection
	if err := r.db.WithContext(ctx).Where("user1_id = ? AND user2_id = ?", u1, u2).First(&conn).Error; err != nil {
		return nil, translate(err)
	}
	return &conn, nil
}

// ListConnections pages through a member's connections, newest first
func (r *PostgresConnectionRepository) ListConnections(ctx context.Context, userID uint, page Page) ([]models.Connection, int64, error) {
	var (
		conns []models.Connection
		total int64
	)
	q := r.db.WithContext(ctx).Model(&models.Connection{}).
		Where("user1_id = ? OR user2_id = ?", userID, userID).
		Session(&gorm.Session{})
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := q.Order("created_at DESC, id DESC").Scopes(page.apply).Find(&conns).Error
	return conns, total, err
}

// DeleteConnection deletes a connection
func (r *PostgresConnectionRepository) DeleteConnection(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&models.Connection{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// SendRequest creates a pending request from req.SenderID to req.ReceiverID.
// Blocks, existing connections and pending requests in either direction are
// rejected with the matching sentinel. A declined or withdrawn request for
// the same pair is reopened instead of duplicated.
func (r *PostgresConnectionRepository) SendRequest(ctx context.Context, req *models.ConnectionRequest) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		a, b := req.SenderID, req.ReceiverID

		var blocks int64
		if err := tx.Model(&models.Block{}).
			Where("(blocker_id = ? AND blocked_id = ?) OR (blocker_id = ? AND blocked_id = ?)", a, b, b, a).
			Count(&blocks).Error; err != nil {
			return err
		}
		if blocks > 0 {
			return ErrBlocked
		}

		u1, u2 := pairOf(a, b)
		var conns int64
		if err := tx.Model(&models.Connection{}).
			Where("user1_id = ? AND user2_id = ?", u1, u2).
			Count(&conns).Error; err != nil {
			return err
		}
		if conns > 0 {
			return ErrAlreadyConnected
		}

		var reverse int64
		if err := tx.Model(&models.ConnectionRequest{}).
			Where("sender_id = ? AND receiver_id = ? AND status = ?", b, a, models.ConnectionPending).
			Count(&reverse).Error; err != nil {
			return err
		}
		if reverse > 0 {
			return ErrReverseRequest
		}

		var existing models.ConnectionRequest
		err := tx.Where("sender_id = ? AND receiver_id = ?", a, b).First(&existing).Error
		switch translate(err) {
		case nil:
			if existing.Status == models.ConnectionPending {
				return ErrRequestPending
			}
			existing.Status = models.ConnectionPending
			existing.Message = req.Message
			existing.RespondedAt = nil
			if err := tx.Save(&existing).Error; err != nil {
				return err
			}
			*req = existing
			return nil
		case ErrNotFound:
			req.Status = models.ConnectionPending
			return tx.Create(req).Error
		default:
			return err
		}
	})
	return translate(err)
}

// GetRequestByID retrieves a connection request by ID
func (r *PostgresConnectionRepository) GetRequestByID(ctx context.Context, id uint) (*models.ConnectionRequest, error) {
	var req models.ConnectionRequest
	if err := r.db.WithContext(ctx).First(&req, id).Error; err != nil {
		return nil, translate(err)
	}
	return &req, nil
}

// GetPendingBetween finds a pending request between the two users in either direction
func (r *PostgresConnectionRepository) GetPendingBetween(ctx context.Context, a, b uint) (*models.ConnectionRequest, error) {
	var req models.ConnectionRequest
	err := r.db.WithContext(ctx).
		Where("((sender_id = ? AND receiver_id = ?) OR (sender_id = ? AND receiver_id = ?)) AND status = ?",
			a, b, b, a, models.ConnectionPending).
		First(&req).Error
	if err != nil {
		return nil, translate(err)
	}
	return &req, nil
}

// ListPendingRequests pages through pending requests received by (incoming)
// or sent by userID
func (r *PostgresConnectionRepository) ListPendingRequests(ctx context.Context, userID uint, incoming bool, page Page) ([]models.ConnectionRequest, int64, error) {
	var (
		requests []models.ConnectionRequest
		total    int64
	)
	column := "sender_id"
	if incoming {
		column = "receiver_id"
	}
	q := r.db.WithContext(ctx).Model(&models.ConnectionRequest{}).
		Where(column+" = ? AND status = ?", userID, models.ConnectionPending).
		Session(&gorm.Session{})
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := q.Order("created_at DESC, id DESC").Scopes(page.apply).Find(&requests).Error
	return requests, total, err
}

// PendingPartnerIDs returns everyone with a pending request to or from userID
func (r *PostgresConnectionRepository) PendingPartnerIDs(ctx context.Context, userID uint) ([]uint, error) {
	var sent, received []uint
	db := r.db.WithContext(ctx)
	if err := db.Model(&models.ConnectionRequest{}).
		Where("sender_id = ? AND status = ?", userID, models.ConnectionPending).
		Pluck("receiver_id", &sent).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&models.ConnectionRequest{}).
		Where("receiver_id = ? AND status = ?", userID, models.ConnectionPending).
		Pluck("sender_id", &received).Error; err != nil {
		return nil, err
	}
	return append(sent, received...), nil
}

// AcceptRequest marks a pending request accepted and creates the connection
// in the same transaction.
func (r *PostgresConnectionRepository) AcceptRequest(ctx context.Context, req *models.ConnectionRequest, at time.Time) (*models.Connection, error) {
	var conn *models.Connection
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.ConnectionRequest{}).
			Where("id = ? AND status = ?", req.ID, models.ConnectionPending).
			Updates(map[string]interface{}{"status": models.ConnectionAccepted, "responded_at": at})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrRequestNotPending
		}

		reqID := req.ID
		conn = models.NewConnection(req.SenderID, req.ReceiverID, &reqID)
		created, err := insertIfAbsent(tx, conn)
		if err != nil {
			return err
		}
		if !created {
			u1, u2 := pairOf(req.SenderID, req.ReceiverID)
			conn = &models.Connection{}
			return tx.Where("user1_id = ? AND user2_id = ?", u1, u2).First(conn).Error
		}
		return nil
	})
	if err != nil {
		return nil, translate(err)
	}
	req.Status = models.ConnectionAccepted
	req.RespondedAt = &at
	return conn, nil
}

// SetRequestStatus moves a pending request to a final status
func (r *PostgresConnectionRepository) SetRequestStatus(ctx context.Context, id uint, status models.ConnectionStatus, at time.Time) error {
	res := r.db.WithContext(ctx).Model(&models.ConnectionRequest{}).
		Where("id = ? AND status = ?", id, models.ConnectionPending).
		Updates(map[string]interface{}{"status": status, "responded_at": at})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrRequestNotPending
	}
	return nil
}
