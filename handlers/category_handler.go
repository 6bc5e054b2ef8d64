package handlers

import (
	"github.com/ardiansyahnr/edu_platform/database"
	"github.com/ardiansyahnr/edu_platform/models"
	"github.com/ardiansyahnr/edu_platform/services"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type CategoryRequest struct {
	Name string `json:"name" validate:"required,max=255"`
}

func CreateCategory(c *fiber.Ctx) error {
	var req CategoryRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	category := models.Category{Name: req.Name}
	if err := database.DB.Create(&category).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create category"})
	}

	return c.Status(fiber.StatusCreated).JSON(category)
}

func ListCategories(c *fiber.Ctx) error {
	var categories []models.Category
	database.DB.Find(&categories)
	return c.JSON(categories)
}

func GetCategory(c *fiber.Ctx) error {
	var category models.Category
	if err := database.DB.First(&category, "id = ?", c.Params("categoryId")).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Category not found"})
	}
	return c.JSON(category)
}

func UpdateCategory(c *fiber.Ctx) error {
	var category models.Category
	if err := database.DB.First(&category, "id = ?", c.Params("categoryId")).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Category not found"})
	}

	var req CategoryRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	category.Name = req.Name
	database.DB.Save(&category)

	return c.JSON(category)
}

// DeleteCategory removes the category together with its learning modules and
// their uploaded assets.
func DeleteCategory(c *fiber.Ctx) error {
	var category models.Category
	if err := database.DB.First(&category, "id = ?", c.Params("categoryId")).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Category not found"})
	}

	var modules []models.LearningModule
	if err := database.DB.Where("category_id = ?", category.ID).Find(&modules).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load modules"})
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("category_id = ?", category.ID).Delete(&models.LearningModule{}).Error; err != nil {
			return err
		}
		return tx.Delete(&category).Error
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to delete category"})
	}

	for _, module := range modules {
		destroyModuleAssets(&module)
	}

	return c.JSON(fiber.Map{"message": "Category and related modules deleted"})
}

func destroyModuleAssets(module *models.LearningModule) {
	if module.PDFPublicID != nil {
		_ = services.DeleteFile(*module.PDFPublicID)
	}
	if module.PhotoPublicID != nil {
		_ = services.DeleteFile(*module.PhotoPublicID)
	}
}
