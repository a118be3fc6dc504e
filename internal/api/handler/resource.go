package handler

import (
	"errors"
	"net/http"
	"time"

	"core-nexus/internal/model"
	"core-nexus/internal/store"

	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
	"gorm.io/gorm"
)

const (
	vaultCacheKey     = "vault_resources"
	vaultCacheTTL     = 5 * time.Minute
	vaultCacheCleanup = 10 * time.Minute
)

// Cache for the vault listing. Every reader with VAULT_VIEW sees the
// same list, so one shared entry is enough; mutations flush it.
var vaultCache = cache.New(vaultCacheTTL, vaultCacheCleanup)

// ListResources returns the whole vault, newest first.
func ListResources(s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		if cached, found := vaultCache.Get(vaultCacheKey); found {
			c.JSON(http.StatusOK, cached.([]model.Resource))
			return
		}

		resources, err := s.Resources()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load vault"})
			return
		}

		vaultCache.Set(vaultCacheKey, resources, vaultCacheTTL)
		c.JSON(http.StatusOK, resources)
	}
}

type resourceInput struct {
	Title       string   `json:"title" binding:"required"`
	Description string   `json:"description"`
	Type        string   `json:"type" binding:"required"`
	Content     string   `json:"content" binding:"required"`
	Tags        []string `json:"tags"`
}

func CreateResource(s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input resourceInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if !model.ValidResourceType(input.Type) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unknown resource type"})
			return
		}

		resource := model.Resource{
			Title:       input.Title,
			Description: input.Description,
			Type:        input.Type,
			Content:     input.Content,
			Tags:        input.Tags,
		}
		if err := s.AddResource(&resource); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not create resource"})
			return
		}

		vaultCache.Flush()
		c.JSON(http.StatusCreated, resource)
	}
}

func UpdateResource(s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input resourceInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if !model.ValidResourceType(input.Type) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unknown resource type"})
			return
		}

		resource := model.Resource{
			ID:          c.Param("id"),
			Title:       input.Title,
			Description: input.Description,
			Type:        input.Type,
			Content:     input.Content,
			Tags:        input.Tags,
		}
		if err := s.UpdateResource(&resource); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "resource not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not update resource"})
			return
		}

		vaultCache.Flush()
		c.JSON(http.StatusOK, resource)
	}
}

// DeleteResource removes a vault entry. Deleting an id that does not
// exist succeeds; the end state is the same.
func DeleteResource(s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := s.DeleteResource(c.Param("id")); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not delete resource"})
			return
		}

		vaultCache.Flush()
		c.JSON(http.StatusOK, gin.H{"message": "resource deleted"})
	}
}
