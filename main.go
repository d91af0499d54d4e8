// @title FinLearn 后端 API
// @version 1.0
// @description FinLearn金融知识学习平台的后端服务器。
// @termsOfService http://swagger.io/terms/

// @contact.name API支持
// @contact.url http://www.swagger.io/support
// @contact.email support@swagger.io

// @license.name Apache 2.0
// @license.url http://www.apache.org/licenses/LICENSE-2.0.html

// @host localhost:8080
// @BasePath /api
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Authorization

package main

import (
	"finlearn_backend/internal/app"
	"finlearn_backend/internal/config"
	"finlearn_backend/pkg/logger"
	"flag"
	"log"
)

func main() {
	// 命令行参数
	seedOnly := flag.Bool("seed", false, "只执行种子数据导入，完成后退出")
	flag.Parse()

	cfg, err := config.LoadConfig("configs")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	cfg.SeedOnly = *seedOnly

	application := app.NewApp(cfg)
	defer logger.Log.Sync()

	// 种子数据导入完成后直接退出
	if *seedOnly {
		if err := application.Seed(); err != nil {
			log.Fatalf("Failed to seed database: %v", err)
		}
		log.Println("种子数据导入完成，退出程序")
		return
	}

	application.Run()
}
