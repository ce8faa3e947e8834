package di

import (
	"go.uber.org/fx"

	"github.com/jrjohn/streamlens-go/internal/domain/dao"
	mongodao "github.com/jrjohn/streamlens-go/internal/domain/dao/mongo"
)

// DAOModule provides MongoDB DAO dependencies
var DAOModule = fx.Module("dao",
	fx.Provide(
		provideMongoIDCounter,
		provideUserDAO,
		provideRefreshTokenDAO,
		provideContentDAO,
		provideImportErrorDAO,
		provideActivityDAO,
		provideAnalyticsDAO,
	),
)

// provideMongoIDCounter creates the auto-increment counter backing
// numeric document IDs.
func provideMongoIDCounter(mongoDB *MongoDatabase) *mongodao.IDCounter {
	return mongodao.NewIDCounter(mongoDB.DB)
}

func provideUserDAO(mongoDB *MongoDatabase, idCounter *mongodao.IDCounter) dao.UserDAO {
	return mongodao.NewUserDAO(mongoDB.DB, idCounter)
}

func provideRefreshTokenDAO(mongoDB *MongoDatabase, idCounter *mongodao.IDCounter) dao.RefreshTokenDAO {
	return mongodao.NewRefreshTokenDAO(mongoDB.DB, idCounter)
}

func provideContentDAO(mongoDB *MongoDatabase, idCounter *mongodao.IDCounter) dao.ContentDAO {
	return mongodao.NewContentDAO(mongoDB.DB, idCounter)
}

func provideImportErrorDAO(mongoDB *MongoDatabase, idCounter *mongodao.IDCounter) dao.ImportErrorDAO {
	return mongodao.NewImportErrorDAO(mongoDB.DB, idCounter)
}

func provideActivityDAO(mongoDB *MongoDatabase, idCounter *mongodao.IDCounter) dao.ActivityDAO {
	return mongodao.NewActivityDAO(mongoDB.DB, idCounter)
}

func provideAnalyticsDAO(mongoDB *MongoDatabase) dao.AnalyticsDAO {
	return mongodao.NewAnalyticsDAO(mongoDB.DB)
}
