package domain

// WebResponse — единый конверт всех HTTP-ответов:
// {status: "success"|"error", code, data?, message?, errors?, paging?}.
type WebResponse struct {
	Status  string  `json:"status"`
	Code    int     `json:"code"`
	Data    any     `json:"data,omitempty"`
	Message string  `json:"message,omitempty"`
	Errors  any     `json:"errors,omitempty"`
	Paging  *Paging `json:"paging,omitempty"`
}

// Paging описывает блок пагинации для поисковой выдачи.
// Страницы нумеруются с единицы; TotalPage = ceil(total/size).
type Paging struct {
	CurrentPage int `json:"current_page"`
	Size        int `json:"size"`
	TotalPage   int `json:"total_page"`
}
