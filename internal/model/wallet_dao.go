package model

import (
	"context"

	"github.com/zeromicro/go-zero/core/logx"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var ErrNotFound = gorm.ErrRecordNotFound

// walletsDao is the Postgres-backed registry. Rows are ordered by insertion
// id, which preserves the append order the file registry also guarantees.
type walletsDao struct {
	db *gorm.DB
}

// NewWalletsDao creates a WalletRegistry backed by the wallets table.
func NewWalletsDao(db *gorm.DB) WalletRegistry {
	return &walletsDao{
		db: db,
	}
}

func (d *walletsDao) GetWallets(ctx context.Context, chain string) ([]Wallet, error) {
	var rows []Wallets
	err := d.db.WithContext(ctx).Where("chain = ?", chain).Order("id asc").Find(&rows).Error
	if err != nil {
		return nil, err
	}

	wallets := make([]Wallet, 0, len(rows))
	for _, row := range rows {
		wallets = append(wallets, Wallet{
			PrivateKey: row.PrivateKey,
			PublicKey:  row.PublicKey,
			Alias:      row.Alias,
		})
	}
	return wallets, nil
}

func (d *walletsDao) Count(ctx context.Context, chain string) (int, error) {
	var count int64
	err := d.db.WithContext(ctx).Model(&Wallets{}).Where("chain = ?", chain).Count(&count).Error
	if err != nil {
		return 0, err
	}
	return int(count), nil
}

// Add upserts the batch inside one transaction; a conflict on
// (chain, public_key) replaces the stored secret and alias in place.
func (d *walletsDao) Add(ctx context.Context, chain string, wallets ...Wallet) error {
	logger := logx.WithContext(ctx)

	rows := make([]Wallets, 0, len(wallets))
	skipped := 0
	for _, w := range wallets {
		if w.PublicKey == "" {
			skipped++
			continue
		}
		rows = append(rows, Wallets{
			Chain:      chain,
			PublicKey:  w.PublicKey,
			PrivateKey: w.PrivateKey,
			Alias:      w.Alias,
		})
	}
	if skipped > 0 {
		logger.Infof("注册表跳过了 %d 个公钥为空的钱包, chain: %s", skipped, chain)
	}
	if len(rows) == 0 {
		return nil
	}

	return d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "chain"}, {Name: "public_key"}},
			DoUpdates: clause.AssignmentColumns([]string{"private_key", "alias", "updated_at"}),
		}).Create(&rows).Error
	})
}
