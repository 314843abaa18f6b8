package dto

// ReminderRunResponse resultado de una ejecución manual de recordatorios.
type ReminderRunResponse struct {
	Status      string `json:"status"`
	HorizonDays int    `json:"horizon_days"`
	Obligations int    `json:"obligations"`
	Users       int    `json:"users"`
	Sent        int    `json:"sent"`
	Failed      int    `json:"failed"`
}
