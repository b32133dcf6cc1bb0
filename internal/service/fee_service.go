package service

import (
	"github.com/navid-fn/feeboard/internal/feequery"
	"github.com/navid-fn/feeboard/internal/repository"
)

type FeesService struct {
	repo   repository.FeeRepository
	engine *feequery.Engine
}

func NewFeesService(repo repository.FeeRepository, notionals []string) *FeesService {
	return &FeesService{
		repo:   repo,
		engine: feequery.NewEngine(repo.GetAll(), notionals),
	}
}

func (fs *FeesService) Query(q feequery.Query) (feequery.Result, error) {
	return fs.engine.Run(q)
}

func (fs *FeesService) Normalize(q feequery.Query) (feequery.Query, error) {
	return fs.engine.Normalize(q)
}

func (fs *FeesService) GetNotionals() []string {
	return fs.engine.Notionals()
}

// GetCounts reports raw and deduplicated record counts.
func (fs *FeesService) GetCounts() map[string]int {
	return map[string]int{
		"records": fs.repo.GetCount(),
		"latest":  fs.engine.Size(),
	}
}
