// 手动导入题库脚本
//
// 从YAML文件批量导入问题，answer1为正确答案。
//
// 用法: go run scripts/import_questions.go -file questions.yaml
package main

import (
	"flag"
	"log"
	"os"

	"millionaire_backend/internal/config"
	"millionaire_backend/internal/repository"
	"millionaire_backend/internal/service"
	"millionaire_backend/pkg/database"

	"gopkg.in/yaml.v3"
)

func main() {
	file := flag.String("file", "questions.yaml", "YAML file with questions to import")
	configPath := flag.String("config", "configs", "directory containing config.yaml")
	flag.Parse()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("无法加载配置: %v", err)
	}

	data, err := os.ReadFile(*file)
	if err != nil {
		log.Fatalf("无法读取题库文件: %v", err)
	}

	var reqs []service.QuestionRequest
	if err := yaml.Unmarshal(data, &reqs); err != nil {
		log.Fatalf("解析题库文件失败: %v", err)
	}

	db, err := database.InitDB(&cfg.Database)
	if err != nil {
		log.Fatalf("数据库连接失败: %v", err)
	}

	questionService := service.NewQuestionService(repository.NewQuestionRepository(db))
	count, err := questionService.Import(reqs)
	if err != nil {
		log.Fatalf("导入失败: %v", err)
	}

	log.Printf("导入完成，共 %d 道题", count)
}
