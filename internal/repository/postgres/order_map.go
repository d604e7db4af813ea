package postgres

import (
	"dascopy/models"

	"github.com/jmoiron/sqlx"
)

type OrderMapRepository struct {
	conn *sqlx.DB
}

func NewOrderMapRepository(conn *sqlx.DB) OrderMapRepo {
	return &OrderMapRepository{
		conn: conn,
	}
}

func (r *OrderMapRepository) Store(m *models.OrderMapping) error {
	if _, err := r.conn.NamedExec("INSERT INTO order_map (id,master_order_id,follower_id,follower_order_id,symbol,side,quantity,status) VALUES (:id,:master_order_id,:follower_id,:follower_order_id,:symbol,:side,:quantity,:status)", m); err != nil {
		return err
	}

	return nil
}

func (r *OrderMapRepository) GetByID(id string) (*models.OrderMapping, error) {
	var mapping models.OrderMapping

	if err := r.conn.QueryRowx("SELECT * FROM order_map WHERE id = $1 LIMIT 1", id).StructScan(&mapping); err != nil {
		return nil, err
	}

	return &mapping, nil
}

func (r *OrderMapRepository) GetByMasterOrder(masterOrderID int64) ([]models.OrderMapping, error) {
	var mappings []models.OrderMapping

	if err := r.conn.Select(&mappings, "SELECT * FROM order_map WHERE master_order_id = $1 ORDER BY created_at ASC;", masterOrderID); err != nil {
		return nil, err
	}

	return mappings, nil
}

func (r *OrderMapRepository) GetLive() ([]models.OrderMapping, error) {
	var mappings []models.OrderMapping

	if err := r.conn.Select(&mappings, "SELECT * FROM order_map WHERE status IN ('PENDING','ACTIVE') ORDER BY created_at ASC;"); err != nil {
		return nil, err
	}

	return mappings, nil
}

func (r *OrderMapRepository) SetStatus(id string, status string) error {
	if _, err := r.conn.Exec("UPDATE order_map SET status = $1, updated_at = now() where id = $2;", status, id); err != nil {
		return err
	}

	return nil
}

func (r *OrderMapRepository) SetFollowerOrderID(id string, followerOrderID int64) error {
	if _, err := r.conn.Exec("UPDATE order_map SET follower_order_id = $1, updated_at = now() where id = $2;", followerOrderID, id); err != nil {
		return err
	}

	return nil
}
