package postgres

import (
	"dascopy/models"

	"github.com/jmoiron/sqlx"
)

type FollowerRepository struct {
	conn *sqlx.DB
}

func NewFollowerRepository(conn *sqlx.DB) FollowerRepo {
	return &FollowerRepository{
		conn: conn,
	}
}

func (r *FollowerRepository) GetAll() ([]models.Follower, error) {
	var followers []models.Follower

	if err := r.conn.Select(&followers, "SELECT * FROM followers ORDER BY id ASC;"); err != nil {
		return nil, err
	}

	return followers, nil
}

func (r *FollowerRepository) GetEnabled() ([]models.Follower, error) {
	var followers []models.Follower

	if err := r.conn.Select(&followers, "SELECT * FROM followers WHERE enabled = true ORDER BY id ASC;"); err != nil {
		return nil, err
	}

	return followers, nil
}

func (r *FollowerRepository) GetByID(id string) (*models.Follower, error) {
	var follower models.Follower

	if err := r.conn.QueryRowx("SELECT * FROM followers WHERE id = $1 LIMIT 1", id).StructScan(&follower); err != nil {
		return nil, err
	}

	return &follower, nil
}

func (r *FollowerRepository) SetBaseMultiplier(id string, multiplier float64) error {
	if _, err := r.conn.Exec("UPDATE followers SET base_multiplier = $1, updated_at = now() where id = $2;", multiplier, id); err != nil {
		return err
	}

	return nil
}

func (r *FollowerRepository) SetEnabled(id string, enabled bool) error {
	if _, err := r.conn.Exec("UPDATE followers SET enabled = $1, updated_at = now() where id = $2;", enabled, id); err != nil {
		return err
	}

	return nil
}
