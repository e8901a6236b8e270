// cmd/w4/main.go
package main

import (
	"log"

	"w4-converter-service/internal/api/handlers"
	"w4-converter-service/internal/api/responses"
	"w4-converter-service/internal/core/w4"

	"github.com/gin-gonic/gin"
)

func main() {
	responses.InitLogger()

	w4Service := w4.NewService()
	w4Handler := handlers.NewW4Handler(w4Service)

	router := gin.Default()

	apiV1 := router.Group("/api/v1")
	{
		// Sem middleware -- o gateway lida com autenticação
		apiV1.POST("/convert/w4", w4Handler.HandleW4Conversion)
		apiV1.POST("/convert/w4/relatorio", w4Handler.HandleW4Relatorio)
	}

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "UP", "service": "w4-converter-service"})
	})

	const port = "8084"
	log.Printf("🚀 W4 Converter Service (Go) iniciado e escutando na porta %s", port)
	if err := router.Run(":" + port); err != nil {
		log.Fatal("Falha ao iniciar o servidor de conversão: ", err)
	}
}
