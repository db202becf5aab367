package ai

import "fmt"

// The two prompts below reproduce the production prompt text verbatim
// (including its informal Spanish); only the interpolation mechanism is
// Go's. Touching the wording changes the drafting behavior.

const detailPromptTemplate = `
Como experto en el area de mantenimiento, estas encargado de dar forma a una lista de actividades
que realizaron los trabajadores para un mantenimiento especifico en %[1]s el tipo de mantenimiento
realizado es %[2]s y el area al que pertenece el manteniniento es %[3]s, tu trabajo es a
partir de la siguiente lista de actividades ingresadas por el trabajador, devolver una lista ordenada
y con el formato adecuado siendo detallado y asegurandote que las actividades calzen con el
mantenimiento realizado en %[4]s

Actividades realizadas por el trabajador
%[5]s

El resultado debe estar contenido en la variable 'strResultado' de un json valido como un solo bloque de texto
El resultado tambien es una lista de actividades sin numeracion ordanadas de inicio a fin del mantenimiento
como una serie de pasos, como en el siguiente ejemplo:

En coordinación con operador de producción se paró funcionamiento de motor para realizar mantenimiento.
Se freno aceite de sistema.
Se realizo limpieza e inspección interna de líneas de lubricación, juego de biela, colector de aceite y desgaste en piñón helicoidal.
Se fabricaron empaquetaduras nuevas de tapas de inspección.
Se llenó 2 galones de aceite SAE 40.
Se instalo filtro de aceite nuevo.
Se realizo regulación de ángulo de aceleración en sistema de control de velocidad.
Se realizo inspección y limpieza de contactos de sistema de encendido Star fire.
Se realizo calibrarlas de válvulas y fabricó empaque nuevo en tapa de balancines.
Se realizo inspección, lubricación y regulación de embrague.
Se realizo limpieza externa de motor.

Puedes agregar pasos intermedios siempre y cuando sean necesarios y la lista original lo requiera
Agrega en caso sea posible la coordinacion con el area que puede ser de mantenimiento o produccion al inicio
Cada paso de la lista de actividades no debe se muy larga, son oraciones concisas y cada oracion va en una nueva linea
Las unicas areas existentes son mantenimiento, produccion y seguridad no existen mas para elegir.
Nautilus es un area que solo es supervisada con mantenimiento.
`

const structuredPayloadSchema = `
    {
      "strTituloDocumento": "nombre del documento word, debe ser representativo, por ejemplo: INFORME de mantenimiento EA12813 (7200H) o similar",
      "strTituloMantenimiento": "nombre del mantenimiento especifico, por ejemplo: INFORME DE MANTENIMIENTO PREVENTIVO MOTOR AJAX EA-22",
      "strActividad": "actividad especifica, por ejemplo: Mantenimiento preventivo de 7200 horas.",
      "strAlcance": "alcance del trabajo, por ejemplo: Realizar mantenimiento preventivo de 7200 horas y ejecutar mantenimiento correctivo si es necesario.",
      "strEstado": "como se encontro el activo, por ejemplo: El motor se encontraba operativo en el pozo. Se coordinó con el área de producción para su parada y posterior intervención, con el fin de ejecutar el mantenimiento preventivo programado.",
      "strEstadoEquipo": "estado especifico del equipo o componente, ejemplo: Se verifica estado de geomembrana de tina. Requiere reparar., •	El equipo se encontraba en condiciones operativas antes de iniciar el mantenimiento. No se reportaron fallas previas a la intervención.",
      "listTrabajosPrevios": ["lista de trabajos previos, ejemplo: Coordinar con producción la puesta fuera de servicio del motor.,Preparar herramientas, insumos y repuestos para el mantenimiento.,Realizar inspección visual externa del equipo antes de la intervención., •	Realizar inspección visual de equipo., •	Preparar herramientas, insumos y repuestos para el mantenimiento."],
      "listActividades":[ "lista de sub actividades en el siguiente formato, se mas detallado con cada paso o actividad, es decir agrega mas sub actividades para detallar sin perder coeherencia"
        {
          "strSubActividad": "actividad que engloba un conjunto de pasos, ejemplo: MANTENIMIENTO PREVENTIVO DE 7200 HORAS MOTOR., MANTENIMIENTO PREVENTIVO DE CONTROLADOR PLUNGER LIFT (PLC  24  VDC)."
          "listSubActividad": [
            "lista de pasos o actividades que pertenecen a esa categoria ejemplo:
            DRENAJE E INSPECCIÓN DE CARTER.
            Se realizó el drenaje completo del aceite del carter.
            Se realizó una inspección visual de los componentes móviles internos (cigüeñal, bielas), sin encontrar anomalías evidentes.
            Se efectuó la limpieza interna del carter para remover sedimentos.

            INSPECCIÓN DE SISTEMA DE IGNICIÓN.
            Se verificó el estado del sistema de encendido.
            Se realizó la limpieza de contactos para asegurar una correcta operación.

            INSPECCIÓN Y AJUSTE EN SISTEMA DE CONTROL DE VELOCIDAD.
            Se verificó el funcionamiento y se realizó la regulación del sistema de control de ralentí.

            en caso quieras un encabezado, ponlo en mayusculas como parte de la lista de cada uno como en DRENAJE E INSPECCIÓN DE CARTER., pero todo en una lista
            "
          ]
        },
        {
        "strSubActividad": MANTENIMIENTO PREVENTIVO A VALVULA MOTORA ALTA PRESION 2” KIMRAY 2200 SMT  PC.,
        "listSubActividad": [...]
        }
    ],
      "listConclusiones":[
        "lista de conclusiones"
      ]
    }
    `

const structuredPromptTemplate = `
como experto en el area de mantenimiento tienes una lista de actividades realizadas
por los trabajadores:
%[1]s
para un mantenimiento del area %[2]s, siendo el mantenimiento del tipo %[3]s
sobre el activo %[4]s, tu trabajo es estructurar esta informacion en un reporte completo
del area respectiva para poder hacer la documentacion correspondiente, para esto debes seguir las reglas:
1. Estructura del resultado:
 %[5]s
2. Datos:
  usa como base los datos del contexto previo y para mas informacion puedes usar este codigo %[6]s que esta vinculado al mantenimiento
  para poder darle mas contexto al contenido del informe
3. Areas:
  Las unicas areas existentes son mantenimiento, produccion y seguridad no existen mas areas para elegir.
`

// DetailPrompt builds the narrative-drafting prompt.
func DetailPrompt(in DetailInput) string {
	return fmt.Sprintf(detailPromptTemplate,
		in.Asset, in.MaintenanceType, in.Area, in.Location, in.Activities)
}

// StructuredPrompt builds the structured-payload prompt.
func StructuredPrompt(in StructuredInput) string {
	return fmt.Sprintf(structuredPromptTemplate,
		in.SystemDetail, in.Area, in.MaintenanceType, in.Asset,
		structuredPayloadSchema, in.Code)
}
