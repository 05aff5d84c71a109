package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/vinocave/vinocave-backend/internal/errors"
	"github.com/vinocave/vinocave-backend/pkg/i18n"
)

type I18nController struct{}

func NewI18nController() *I18nController {
	return &I18nController{}
}

// ListLanguages returns the supported interface languages
// GET /api/v1/i18n/languages
func (ctrl *I18nController) ListLanguages(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"languages": []i18n.Language{i18n.LanguageFrench, i18n.LanguageEnglish},
		"default":   i18n.DefaultLanguage,
	})
}

// GetTranslations returns the full translation table for one language
// GET /api/v1/i18n/:lang
func (ctrl *I18nController) GetTranslations(c *gin.Context) {
	raw := c.Param("lang")
	if !i18n.IsSupported(raw) {
		errors.BadRequest(c, errors.SettingsInvalidLanguage, "Langue non prise en charge")
		return
	}

	lang := i18n.Language(raw)
	c.JSON(http.StatusOK, gin.H{
		"language":     lang,
		"translations": i18n.Table(lang),
	})
}
