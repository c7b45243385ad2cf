package catalog

import "github.com/m04kA/salon-booking-service/pkg/dbmetrics"

// DBExecutor соединение или обёртка с метриками; транзакция берется из контекста
type DBExecutor = dbmetrics.DBExecutor
