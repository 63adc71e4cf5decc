package handler

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/danielalasn/pivot/internal/models"
	"github.com/danielalasn/pivot/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// BackupHandler snapshots the sqlite database file on demand.
type BackupHandler struct {
	DB        *gorm.DB
	DBPath    string
	BackupDir string
}

func NewBackupHandler(db *gorm.DB, dbPath, backupDir string) *BackupHandler {
	return &BackupHandler{DB: db, DBPath: dbPath, BackupDir: backupDir}
}

// Create copies the database file under a fresh uuid name and records
// the snapshot.
func (h *BackupHandler) Create(c *gin.Context) {
	if err := os.MkdirAll(h.BackupDir, 0o755); err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "create backup dir failed")
		return
	}

	id := uuid.New().String()
	fileName := fmt.Sprintf("pivot-%s-%s.db", time.Now().Format("20060102"), id[:8])
	dstPath := filepath.Join(h.BackupDir, fileName)

	src, err := os.Open(h.DBPath)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "open database failed")
		return
	}
	defer src.Close()

	dst, err := os.OpenFile(dstPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o600)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "create backup file failed")
		return
	}
	size, err := io.Copy(dst, src)
	closeErr := dst.Close()
	if err != nil || closeErr != nil {
		_ = os.Remove(dstPath)
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "write backup file failed")
		return
	}

	backup := models.Backup{
		ID:        id,
		FileName:  fileName,
		SizeBytes: size,
	}
	if err := h.DB.Create(&backup).Error; err != nil {
		_ = os.Remove(dstPath)
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "save backup record failed")
		return
	}

	util.Success(c, util.Response{"backup": backup})
}

// List returns recorded snapshots, newest first.
func (h *BackupHandler) List(c *gin.Context) {
	var list []models.Backup
	if err := h.DB.Order("created_at DESC").Find(&list).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "query backups failed")
		return
	}
	util.Success(c, util.Response{"items": list})
}

// Download streams one snapshot file.
func (h *BackupHandler) Download(c *gin.Context) {
	id := c.Param("id")
	var backup models.Backup
	if err := h.DB.First(&backup, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			util.Error(c, http.StatusNotFound, util.CodeNotFound, "backup not found")
		} else {
			util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "query backup failed")
		}
		return
	}
	c.Header("Content-Type", "application/octet-stream")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s\"", backup.FileName))
	c.File(filepath.Join(h.BackupDir, backup.FileName))
}

// Restore replaces the ledger data with the contents of one snapshot.
// Audit and backup records are left as they are.
func (h *BackupHandler) Restore(c *gin.Context) {
	id := c.Param("id")
	var backup models.Backup
	if err := h.DB.First(&backup, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			util.Error(c, http.StatusNotFound, util.CodeNotFound, "backup not found")
		} else {
			util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "query backup failed")
		}
		return
	}

	src, err := gorm.Open(sqlite.Open(filepath.Join(h.BackupDir, backup.FileName)), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "open backup file failed")
		return
	}
	defer func() {
		if sqlDB, err := src.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}()

	err = h.DB.Transaction(func(tx *gorm.DB) error {
		if err := restoreTable[models.Account](src, tx); err != nil {
			return err
		}
		if err := restoreTable[models.Transaction](src, tx); err != nil {
			return err
		}
		if err := restoreTable[models.Installment](src, tx); err != nil {
			return err
		}
		if err := restoreTable[models.IOU](src, tx); err != nil {
			return err
		}
		if err := restoreTable[models.Investment](src, tx); err != nil {
			return err
		}
		if err := restoreTable[models.InvestmentTransaction](src, tx); err != nil {
			return err
		}
		if err := restoreTable[models.PLAdjustment](src, tx); err != nil {
			return err
		}
		if err := restoreTable[models.AbonoReserve](src, tx); err != nil {
			return err
		}
		if err := restoreTable[models.Category](src, tx); err != nil {
			return err
		}
		if err := restoreTable[models.Subcategory](src, tx); err != nil {
			return err
		}
		return restoreTable[models.PriceCache](src, tx)
	})
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "restore failed")
		return
	}
	util.Success(c, util.Response{"message": "backup restored", "file": backup.FileName})
}

// restoreTable wipes a table and refills it from the snapshot, primary
// keys included.
func restoreTable[T any](src, dst *gorm.DB) error {
	var rows []T
	if err := src.Find(&rows).Error; err != nil {
		return err
	}
	var model T
	if err := dst.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&model).Error; err != nil {
		return err
	}
	if len(rows) == 0 {
		return nil
	}
	return dst.CreateInBatches(rows, 200).Error
}

// Delete removes the snapshot file and its record.
func (h *BackupHandler) Delete(c *gin.Context) {
	id := c.Param("id")
	var backup models.Backup
	if err := h.DB.First(&backup, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			util.Error(c, http.StatusNotFound, util.CodeNotFound, "backup not found")
		} else {
			util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "query backup failed")
		}
		return
	}
	_ = os.Remove(filepath.Join(h.BackupDir, backup.FileName))
	if err := h.DB.Delete(&backup).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "delete backup record failed")
		return
	}
	util.Success(c, util.Response{"message": "backup deleted"})
}
