package dto

type ClaimLivesRequestDTO struct {
	Wallet   string `json:"wallet" example:"EQD4FPq-PRDieyQKkizFTRtSDyucUIqrj0v_zXJmqaDp6_0t"`
	DeviceID string `json:"deviceId" example:"device-42"`
	IP       string `json:"ip,omitempty" example:"203.0.113.7"`
	GameID   string `json:"gameId,omitempty" example:"blocks"`
}

type LivesResponseDTO struct {
	Free     int `json:"free" example:"1"`
	Bonus    int `json:"bonus" example:"2"`
	PaidBank int `json:"paid_bank" example:"3"`
	Total    int `json:"total" example:"6"`
}
