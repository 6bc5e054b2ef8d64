package handlers

import (
	"mime/multipart"
	"path/filepath"
	"strings"

	"github.com/ardiansyahnr/edu_platform/database"
	"github.com/ardiansyahnr/edu_platform/models"
	"github.com/ardiansyahnr/edu_platform/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

func hasAllowedExtension(header *multipart.FileHeader, allowed ...string) bool {
	ext := strings.ToLower(filepath.Ext(header.Filename))
	for _, a := range allowed {
		if ext == a {
			return true
		}
	}
	return false
}

func uploadFormFile(c *fiber.Ctx, field, folder string, allowed ...string) (*services.UploadedFile, error) {
	header, err := c.FormFile(field)
	if err != nil {
		return nil, nil // field absent
	}
	if !hasAllowedExtension(header, allowed...) {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Unsupported file type for "+field)
	}

	file, err := header.Open()
	if err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Failed to open uploaded file")
	}
	defer file.Close()

	uploaded, err := services.UploadFile(file, folder)
	if err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Failed to upload file")
	}
	return uploaded, nil
}

// CreateModule stores a learning module. The PDF and photo arrive as multipart
// files and land in the file store; only their references are persisted.
func CreateModule(c *fiber.Ctx) error {
	title := c.FormValue("title")
	categoryID := c.FormValue("category_id")
	videoURL := c.FormValue("video_url")
	description := c.FormValue("description")
	if title == "" || categoryID == "" || videoURL == "" || description == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "title, category_id, video_url and description are required"})
	}

	parsedCategoryID, err := uuid.Parse(categoryID)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid category_id"})
	}
	var category models.Category
	if err := database.DB.First(&category, "id = ?", parsedCategoryID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Category not found"})
	}

	module := models.LearningModule{
		Title:       title,
		CategoryID:  parsedCategoryID,
		VideoURL:    videoURL,
		Description: description,
	}

	if uploaded, err := uploadFormFile(c, "pdf", services.FolderModulePDFs, ".pdf"); err != nil {
		return err
	} else if uploaded != nil {
		module.PDFURL = &uploaded.URL
		module.PDFPublicID = &uploaded.PublicID
	}

	if uploaded, err := uploadFormFile(c, "photo", services.FolderModulePhotos, ".jpg", ".jpeg", ".png"); err != nil {
		return err
	} else if uploaded != nil {
		module.PhotoURL = &uploaded.URL
		module.PhotoPublicID = &uploaded.PublicID
	}

	if err := database.DB.Create(&module).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create module"})
	}

	database.DB.Preload("Category").First(&module, "id = ?", module.ID)
	return c.Status(fiber.StatusCreated).JSON(module)
}

func ListModules(c *fiber.Ctx) error {
	var modules []models.LearningModule
	database.DB.Preload("Category").Find(&modules)
	return c.JSON(modules)
}

func GetModule(c *fiber.Ctx) error {
	var module models.LearningModule
	if err := database.DB.Preload("Category").First(&module, "id = ?", c.Params("moduleId")).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Module not found"})
	}
	return c.JSON(module)
}

// UpdateModule patches the provided fields. A replacement file destroys the
// previous asset after the new one is stored.
func UpdateModule(c *fiber.Ctx) error {
	var module models.LearningModule
	if err := database.DB.First(&module, "id = ?", c.Params("moduleId")).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Module not found"})
	}

	if title := c.FormValue("title"); title != "" {
		module.Title = title
	}
	if categoryID := c.FormValue("category_id"); categoryID != "" {
		parsed, err := uuid.Parse(categoryID)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid category_id"})
		}
		var category models.Category
		if err := database.DB.First(&category, "id = ?", parsed).Error; err != nil {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Category not found"})
		}
		module.CategoryID = parsed
	}
	if videoURL := c.FormValue("video_url"); videoURL != "" {
		module.VideoURL = videoURL
	}
	if description := c.FormValue("description"); description != "" {
		module.Description = description
	}

	if uploaded, err := uploadFormFile(c, "pdf", services.FolderModulePDFs, ".pdf"); err != nil {
		return err
	} else if uploaded != nil {
		if module.PDFPublicID != nil {
			_ = services.DeleteFile(*module.PDFPublicID)
		}
		module.PDFURL = &uploaded.URL
		module.PDFPublicID = &uploaded.PublicID
	}

	if uploaded, err := uploadFormFile(c, "photo", services.FolderModulePhotos, ".jpg", ".jpeg", ".png"); err != nil {
		return err
	} else if uploaded != nil {
		if module.PhotoPublicID != nil {
			_ = services.DeleteFile(*module.PhotoPublicID)
		}
		module.PhotoURL = &uploaded.URL
		module.PhotoPublicID = &uploaded.PublicID
	}

	if err := database.DB.Save(&module).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update module"})
	}

	database.DB.Preload("Category").First(&module, "id = ?", module.ID)
	return c.JSON(module)
}

func DeleteModule(c *fiber.Ctx) error {
	var module models.LearningModule
	if err := database.DB.First(&module, "id = ?", c.Params("moduleId")).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Module not found"})
	}

	if err := database.DB.Delete(&module).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to delete module"})
	}

	destroyModuleAssets(&module)

	return c.JSON(fiber.Map{"message": "Module deleted"})
}
