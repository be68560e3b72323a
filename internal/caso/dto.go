package caso

type criarCasoRequest struct {
	Titulo       string `json:"titulo"`
	Descricao    string `json:"descricao"`
	Area         string `json:"area"`
	Cidade       string `json:"cidade"`
	UF           string `json:"uf"`
	Complexidade string `json:"complexidade"`
}

type encerrarCasoRequest struct {
	Nota       int    `json:"nota"`
	Comentario string `json:"comentario"`
}
