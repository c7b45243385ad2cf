package types

// Встраиваем базу часовых поясов, чтобы часовой пояс салона не зависел от ОС хоста
import _ "time/tzdata"
