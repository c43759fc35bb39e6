package get_calendar_days

import "time"

// Request модель запроса на получение календаря месяца
type Request struct {
	SalonID   int64     // ID салона
	ServiceID int64     // ID услуги (определяет длительность)
	Month     time.Time // Любая дата внутри запрашиваемого месяца
}

// Response модель ответа с днями календарного представления месяца.
// Дни идут подряд от начала недели первого числа до конца недели
// последнего числа, чтобы фронтенд мог отрисовать сетку без дыр.
type Response struct {
	SalonID   int64 // ID салона
	ServiceID int64 // ID услуги
	Days      []Day // Дни календарного представления по порядку
}

// Day состояние одного дня календаря
type Day struct {
	Date           time.Time // Дата дня
	InMonth        bool      // Принадлежит ли день запрошенному месяцу
	IsWorkingDay   bool      // Рабочий ли день по конфигурации салона
	IsPast         bool      // Прошедший ли день
	AvailableSlots int       // Количество доступных слотов для услуги
	FullyBooked    bool      // true, если слоты есть, но все заняты
}
