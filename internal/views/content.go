package views

type Step struct {
	Number      string
	Title       string
	Description string
}

type Benefit struct {
	Key     string
	Title   string
	Summary string
	Content string
}

type Value struct {
	Title       string
	Description string
}

type Service struct {
	Title       string
	Description string
}

var processSteps = []Step{
	{"01", "Briefing / Visita Inicial", "Entendemos as suas necessidades e desejos."},
	{"02", "Proposta Comercial", "Apresentamos um orçamento detalhado e transparente."},
	{"03", "Planeamento", "Criamos um projeto personalizado para o seu espaço."},
	{"04", "Execução", "A nossa equipa especializada transforma o seu projeto em realidade."},
	{"05", "Entrega Final", "Garantimos a sua satisfação total com o resultado."},
}

var benefits = []Benefit{
	{
		Key:     "qualidade",
		Title:   "Qualidade Premium",
		Summary: "Materiais de primeira linha e acabamentos perfeitos.",
		Content: "Na DNL Remodelações, não aceitamos atalhos. Utilizamos apenas materiais de marcas certificadas e técnicas construtivas de ponta. Os nossos acabamentos passam por um rigoroso controlo de qualidade para garantir durabilidade e estética impecável.",
	},
	{
		Key:     "prazo",
		Title:   "Prazo Garantido",
		Summary: "Respeitamos rigorosamente o cronograma.",
		Content: "Sabemos que obras podem ser stressantes, por isso o prazo é sagrado para nós. Trabalhamos com cronogramas realistas e detalhados. Se combinamos uma data, nós cumprimos.",
	},
	{
		Key:     "transparencia",
		Title:   "Transparência Total",
		Summary: "Orçamentos claros e sem surpresas.",
		Content: "Sem letras miúdas ou custos ocultos. Os nossos orçamentos são detalhados item a item e recebe relatórios constantes sobre o andamento da obra.",
	},
}

var companyValues = []Value{
	{"Responsabilidade Social e Ambiental", "Compromisso com práticas sustentáveis, gestão eficiente de resíduos e impacto positivo na comunidade onde atuamos."},
	{"Respeito às Pessoas", "Tratamos clientes, colaboradores e parceiros com dignidade, empatia e máxima consideração."},
	{"Honestidade", "Transparência total em orçamentos, prazos e relações. A confiança é o alicerce de todas as nossas obras."},
	{"Humildade", "Estamos em constante aprendizagem. Ouvimos os nossos clientes para evoluir continuamente."},
	{"Disciplina", "Rigor no cumprimento de horários, processos de segurança e normas técnicas."},
	{"Ética", "Conduta íntegra e profissional em todas as situações, garantindo a qualidade e a legalidade."},
}

var services = []Service{
	{"Remodelações Integrais", "Coordenamos a obra do início ao fim, da demolição ao acabamento final."},
	{"Canalização", "Instalação e substituição de redes de água e esgotos, casas de banho e cozinhas."},
	{"Eletricidade", "Quadros, circuitos e iluminação de acordo com as normas em vigor."},
	{"Pladur", "Tetos falsos, divisórias e isolamento térmico e acústico."},
	{"Pintura", "Pintura interior e exterior com preparação cuidada das superfícies."},
	{"Pavimentos e Revestimentos", "Cerâmicos, flutuantes e vinílicos com assentamento de precisão."},
}

const (
	aboutHistory = "A DNL Remodelações nasceu da paixão por transformar ambientes e melhorar a qualidade de vida das pessoas através da construção. Começámos como uma pequena equipa familiar e crescemos com a recomendação dos nossos clientes."
	aboutMission = "Entregar soluções de reforma que superem as expectativas, aliando funcionalidade, estética e durabilidade."
	aboutVision  = "Ser referência nacional em remodelações residenciais e comerciais, reconhecida pela qualidade e pela confiança que construímos com cada cliente."
)
