package model

type Clinic struct {
	Base
	Name     string `db:"name" json:"name"`
	Address  string `db:"address" json:"address"`
	Phone    string `db:"phone" json:"phone"`
	About    string `db:"about" json:"about,omitempty"`
	Status   string `db:"status" json:"status"`
	Timezone string `db:"timezone" json:"timezone"`
}
