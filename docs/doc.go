// Package docs provides generated OpenAPI documentation.
//
// Marksheet Extraction API
//
//	@title			Marksheet Extraction API
//	@version		1.0
//	@description	AI-powered API for extracting structured data from marksheet images and PDFs.
//	@termsOfService	http://swagger.io/terms/
//
//	@contact.name	API Support
//	@contact.url	https://github.com/SaiAbhiramBussa/AI-Marksheet-Extraction-API
//
//	@license.name	MIT
//	@license.url	https://opensource.org/licenses/MIT
//
//	@host		localhost:8000
//	@BasePath	/
//
//	@schemes	http https
package docs

//go:generate swag init -g ../cmd/marksheet/serve.go -o ./swagger --parseDependency --parseInternal
